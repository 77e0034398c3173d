package services

import (
	"github.com/charmbracelet/log"

	"github.com/duetcal/duetcal-api/internal/domain/calendar"
	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
	"github.com/duetcal/duetcal-api/internal/validation"
)

// CalendarService stores descriptive records of linked third-party calendars.
type CalendarService struct {
	repos storage.RepositoryContainer
	log   *log.Logger
}

// NewCalendarService creates a new external calendar service instance
func NewCalendarService(repos storage.RepositoryContainer) *CalendarService {
	return &CalendarService{
		repos: repos,
		log:   logger.Service("calendar"),
	}
}

// AddCalendarRequest represents a request to link an external calendar
type AddCalendarRequest struct {
	Provider    string  `json:"provider" binding:"required"`
	ExternalID  string  `json:"external_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Color       *string `json:"color"`
	SyncEnabled *bool   `json:"sync_enabled"`
}

// Add links an external calendar to the user's account. Sync stays enabled
// unless explicitly turned off.
func (s *CalendarService) Add(userID int, req AddCalendarRequest) (*calendar.ExternalCalendar, error) {
	ve := common.NewValidationError()
	if err := validation.ValidateRequired(req.Provider, "provider"); err != nil {
		ve.Add("provider", err.Error())
	}
	if err := validation.ValidateRequired(req.ExternalID, "external_id"); err != nil {
		ve.Add("external_id", err.Error())
	}
	if err := validation.ValidateRequired(req.Name, "name"); err != nil {
		ve.Add("name", err.Error())
	}
	if ve.HasErrors() {
		return nil, ve
	}

	c := &calendar.ExternalCalendar{
		UserID:      userID,
		Provider:    req.Provider,
		ExternalID:  req.ExternalID,
		Name:        req.Name,
		Color:       req.Color,
		SyncEnabled: true,
	}
	if req.SyncEnabled != nil {
		c.SyncEnabled = *req.SyncEnabled
	}

	if err := s.repos.Calendars().Create(c); err != nil {
		return nil, err
	}

	s.log.Info("external calendar linked", "calendar_id", c.ID, "user_id", userID, "provider", c.Provider)
	return c, nil
}

// ListForUser returns the user's linked calendars.
func (s *CalendarService) ListForUser(userID int) ([]*calendar.ExternalCalendar, error) {
	return s.repos.Calendars().GetByUser(userID)
}
