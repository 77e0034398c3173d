package calendar

import (
	"errors"
	"strings"
	"time"
)

// ExternalCalendar is a descriptive record of a linked third-party calendar.
// No synchronization logic lives in this service; the scheduler only stamps
// LastSyncedAt on sync-enabled records.
type ExternalCalendar struct {
	ID           int        `json:"id" gorm:"primaryKey"`
	UserID       int        `json:"user_id" gorm:"not null;index"`
	Provider     string     `json:"provider" gorm:"not null"`
	ExternalID   string     `json:"external_id" gorm:"not null"`
	Name         string     `json:"name" gorm:"not null"`
	Color        *string    `json:"color"`
	SyncEnabled  bool       `json:"sync_enabled" gorm:"default:true"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (ExternalCalendar) TableName() string {
	return "external_calendars"
}

// Validate checks the stored representation is complete.
func (c *ExternalCalendar) Validate() error {
	if strings.TrimSpace(c.Provider) == "" {
		return errors.New("provider is required")
	}
	if strings.TrimSpace(c.ExternalID) == "" {
		return errors.New("external_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
