package migrations

import (
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/calendar"
	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/domain/partner"
	"github.com/duetcal/duetcal-api/internal/domain/user"
)

// AllModels returns a slice of all models for migration
func AllModels() []any {
	return []any{
		&user.User{},
		&event.Event{},
		&event.Participant{},
		&partner.Link{},
		&collab.Comment{},
		&collab.Reaction{},
		&calendar.ExternalCalendar{},
	}
}

// migration002Up creates all core tables using GORM AutoMigrate
func migration002Up(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// migration002Down drops all core tables
func migration002Down(db *gorm.DB) error {
	tables := []string{
		"external_calendars",
		"reactions",
		"comments",
		"partners",
		"event_participants",
		"events",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
			return err
		}
	}

	return nil
}
