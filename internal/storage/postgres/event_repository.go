package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// EventRepository implements storage.EventRepository using GORM
type EventRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewEventRepository creates a new PostgreSQL event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		db:  db,
		log: logger.Repository("event"),
	}
}

// eventOrder is the listing order: day, then clock time, then insertion order
// as the stable tie-break.
const eventOrder = "date ASC, start_time ASC, id ASC"

func (r *EventRepository) Create(e *event.Event) error {
	r.log.Debug("creating event", "title", e.Title, "owner_id", e.OwnerID, "date", e.Date.String())

	if err := r.db.Create(e).Error; err != nil {
		r.log.Error("failed to create event", "error", err, "owner_id", e.OwnerID)
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.log.Info("event created successfully", "event_id", e.ID, "owner_id", e.OwnerID)
	return nil
}

func (r *EventRepository) GetByID(id int) (*event.Event, error) {
	r.log.Debug("retrieving event by ID", "event_id", id)

	var e event.Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("event", id)
		}
		r.log.Error("failed to retrieve event", "event_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve event: %w", err)
	}

	return &e, nil
}

func (r *EventRepository) Update(e *event.Event) error {
	r.log.Debug("updating event", "event_id", e.ID)

	if err := r.db.Save(e).Error; err != nil {
		r.log.Error("failed to update event", "event_id", e.ID, "error", err)
		return fmt.Errorf("failed to update event: %w", err)
	}

	r.log.Info("event updated successfully", "event_id", e.ID)
	return nil
}

// Delete removes an event and cascades to its participants, comments and
// reactions inside one transaction.
func (r *EventRepository) Delete(id int) error {
	r.log.Debug("deleting event", "event_id", id)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var e event.Event
		if err := tx.First(&e, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFound("event", id)
			}
			return fmt.Errorf("failed to check event existence: %w", err)
		}

		if err := tx.Where("event_id = ?", id).Delete(&event.Participant{}).Error; err != nil {
			return fmt.Errorf("failed to delete event participants: %w", err)
		}
		if err := tx.Where("event_id = ?", id).Delete(&collab.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete event comments: %w", err)
		}
		if err := tx.Where("event_id = ?", id).Delete(&collab.Reaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete event reactions: %w", err)
		}

		return tx.Delete(&e).Error
	})
	if err != nil {
		if common.IsNotFound(err) {
			return err
		}
		r.log.Error("failed to delete event", "event_id", id, "error", err)
		return fmt.Errorf("failed to delete event: %w", err)
	}

	r.log.Info("event deleted successfully", "event_id", id)
	return nil
}

func (r *EventRepository) GetByOwner(ownerID int, dr *event.DateRange) ([]*event.Event, error) {
	r.log.Debug("retrieving events by owner", "owner_id", ownerID)

	query := r.db.Where("owner_id = ?", ownerID)
	query = applyDateRange(query, dr)

	var events []*event.Event
	if err := query.Order(eventOrder).Find(&events).Error; err != nil {
		r.log.Error("failed to retrieve events by owner", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to retrieve events by owner: %w", err)
	}

	r.log.Debug("events retrieved", "owner_id", ownerID, "count", len(events))
	return events, nil
}

func (r *EventRepository) GetByOwnersAndPrivacy(ownerIDs []int, privacies []event.Privacy, dr *event.DateRange) ([]*event.Event, error) {
	r.log.Debug("retrieving events by owner set and privacy", "owners", len(ownerIDs), "privacies", len(privacies))

	if len(ownerIDs) == 0 {
		return []*event.Event{}, nil
	}

	query := r.db.Where("owner_id IN ? AND privacy IN ?", ownerIDs, privacies)
	query = applyDateRange(query, dr)

	var events []*event.Event
	if err := query.Order(eventOrder).Find(&events).Error; err != nil {
		r.log.Error("failed to retrieve events by owner set", "error", err)
		return nil, fmt.Errorf("failed to retrieve events by owner set: %w", err)
	}

	r.log.Debug("events retrieved", "count", len(events))
	return events, nil
}

func applyDateRange(query *gorm.DB, dr *event.DateRange) *gorm.DB {
	if dr == nil {
		return query
	}
	return query.Where("date BETWEEN ? AND ?", dr.Start.Time, dr.End.Time)
}
