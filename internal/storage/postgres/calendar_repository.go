package postgres

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/calendar"
	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// CalendarRepository implements storage.CalendarRepository using GORM
type CalendarRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewCalendarRepository creates a new PostgreSQL external calendar repository
func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{
		db:  db,
		log: logger.Repository("calendar"),
	}
}

func (r *CalendarRepository) Create(c *calendar.ExternalCalendar) error {
	r.log.Debug("creating external calendar", "user_id", c.UserID, "provider", c.Provider)

	if err := c.Validate(); err != nil {
		r.log.Error("external calendar validation failed", "error", err)
		return fmt.Errorf("external calendar validation failed: %w", err)
	}

	if err := r.db.Create(c).Error; err != nil {
		r.log.Error("failed to create external calendar", "user_id", c.UserID, "error", err)
		return fmt.Errorf("failed to create external calendar: %w", err)
	}

	r.log.Info("external calendar created", "calendar_id", c.ID, "user_id", c.UserID, "provider", c.Provider)
	return nil
}

func (r *CalendarRepository) GetByUser(userID int) ([]*calendar.ExternalCalendar, error) {
	r.log.Debug("retrieving external calendars by user", "user_id", userID)

	var calendars []*calendar.ExternalCalendar
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&calendars).Error; err != nil {
		r.log.Error("failed to retrieve external calendars", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to retrieve external calendars: %w", err)
	}

	return calendars, nil
}

func (r *CalendarRepository) GetSyncEnabled() ([]*calendar.ExternalCalendar, error) {
	var calendars []*calendar.ExternalCalendar
	if err := r.db.Where("sync_enabled = ?", true).Order("id ASC").Find(&calendars).Error; err != nil {
		r.log.Error("failed to retrieve sync-enabled calendars", "error", err)
		return nil, fmt.Errorf("failed to retrieve sync-enabled calendars: %w", err)
	}
	return calendars, nil
}

func (r *CalendarRepository) TouchLastSynced(id int, at time.Time) error {
	result := r.db.Model(&calendar.ExternalCalendar{}).Where("id = ?", id).Update("last_synced_at", at)
	if result.Error != nil {
		r.log.Error("failed to stamp last_synced_at", "calendar_id", id, "error", result.Error)
		return fmt.Errorf("failed to stamp last_synced_at: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewNotFound("external calendar", id)
	}
	return nil
}
