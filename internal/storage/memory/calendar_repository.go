package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/duetcal/duetcal-api/internal/domain/calendar"
	"github.com/duetcal/duetcal-api/internal/domain/common"
)

// CalendarRepository implements storage.CalendarRepository on the shared
// store.
type CalendarRepository struct {
	store *store
}

func (r *CalendarRepository) Create(c *calendar.ExternalCalendar) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("external calendar validation failed: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.ID = r.store.next("external_calendars")
	r.store.calendars[c.ID] = *c
	return nil
}

func (r *CalendarRepository) GetByUser(userID int) ([]*calendar.ExternalCalendar, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	calendars := make([]*calendar.ExternalCalendar, 0)
	for _, c := range r.store.calendars {
		if c.UserID == userID {
			out := c
			calendars = append(calendars, &out)
		}
	}
	sort.Slice(calendars, func(i, j int) bool { return calendars[i].ID < calendars[j].ID })
	return calendars, nil
}

func (r *CalendarRepository) GetSyncEnabled() ([]*calendar.ExternalCalendar, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	calendars := make([]*calendar.ExternalCalendar, 0)
	for _, c := range r.store.calendars {
		if c.SyncEnabled {
			out := c
			calendars = append(calendars, &out)
		}
	}
	sort.Slice(calendars, func(i, j int) bool { return calendars[i].ID < calendars[j].ID })
	return calendars, nil
}

func (r *CalendarRepository) TouchLastSynced(id int, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.calendars[id]
	if !ok {
		return common.NewNotFound("external calendar", id)
	}
	c.LastSyncedAt = &at
	r.store.calendars[id] = c
	return nil
}
