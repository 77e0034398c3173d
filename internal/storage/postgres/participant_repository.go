package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// ParticipantRepository implements storage.ParticipantRepository using GORM
type ParticipantRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewParticipantRepository creates a new PostgreSQL participant repository
func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{
		db:  db,
		log: logger.Repository("participant"),
	}
}

// Upsert inserts the grant or, when the (event, user) pair already holds one,
// updates its permission in place.
func (r *ParticipantRepository) Upsert(p *event.Participant) error {
	r.log.Debug("upserting participant grant", "event_id", p.EventID, "user_id", p.UserID, "permission", p.Permission)

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission"}),
	}).Create(p).Error
	if err != nil {
		r.log.Error("failed to upsert participant grant", "event_id", p.EventID, "user_id", p.UserID, "error", err)
		return fmt.Errorf("failed to upsert participant grant: %w", err)
	}

	r.log.Info("participant grant upserted", "event_id", p.EventID, "user_id", p.UserID, "permission", p.Permission)
	return nil
}

// Remove deletes the grant for the pair. Removing an absent grant is a no-op.
func (r *ParticipantRepository) Remove(eventID, userID int) error {
	r.log.Debug("removing participant grant", "event_id", eventID, "user_id", userID)

	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&event.Participant{}).Error; err != nil {
		r.log.Error("failed to remove participant grant", "event_id", eventID, "user_id", userID, "error", err)
		return fmt.Errorf("failed to remove participant grant: %w", err)
	}

	return nil
}

func (r *ParticipantRepository) Get(eventID, userID int) (*event.Participant, error) {
	r.log.Debug("retrieving participant grant", "event_id", eventID, "user_id", userID)

	var p event.Participant
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("participant", 0)
		}
		r.log.Error("failed to retrieve participant grant", "event_id", eventID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to retrieve participant grant: %w", err)
	}

	return &p, nil
}

func (r *ParticipantRepository) GetByEvent(eventID int) ([]*event.ParticipantProfile, error) {
	r.log.Debug("retrieving participants by event", "event_id", eventID)

	var grants []event.Participant
	if err := r.db.Where("event_id = ?", eventID).Order("id ASC").Find(&grants).Error; err != nil {
		r.log.Error("failed to retrieve event participants", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve event participants: %w", err)
	}

	profiles, err := publicProfiles(r.db, grants, func(p event.Participant) int { return p.UserID })
	if err != nil {
		r.log.Error("failed to load participant profiles", "event_id", eventID, "error", err)
		return nil, err
	}

	rows := make([]*event.ParticipantProfile, 0, len(grants))
	for _, g := range grants {
		rows = append(rows, &event.ParticipantProfile{Participant: g, User: profiles[g.UserID]})
	}

	r.log.Debug("event participants retrieved", "event_id", eventID, "count", len(rows))
	return rows, nil
}

func (r *ParticipantRepository) GetByEventAndUser(eventID, userID int) (bool, error) {
	var count int64
	if err := r.db.Model(&event.Participant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error; err != nil {
		r.log.Error("failed to check participant grant", "event_id", eventID, "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to check participant grant: %w", err)
	}
	return count > 0, nil
}
