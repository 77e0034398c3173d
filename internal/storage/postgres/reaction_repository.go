package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// ReactionRepository implements storage.ReactionRepository using GORM
type ReactionRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewReactionRepository creates a new PostgreSQL reaction repository
func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{
		db:  db,
		log: logger.Repository("reaction"),
	}
}

func (r *ReactionRepository) Create(reaction *collab.Reaction) error {
	r.log.Debug("creating reaction", "event_id", reaction.EventID, "user_id", reaction.UserID, "type", reaction.Type)

	if err := r.db.Create(reaction).Error; err != nil {
		r.log.Error("failed to create reaction", "event_id", reaction.EventID, "user_id", reaction.UserID, "error", err)
		return fmt.Errorf("failed to create reaction: %w", err)
	}

	r.log.Info("reaction created successfully", "reaction_id", reaction.ID, "event_id", reaction.EventID)
	return nil
}

// Remove deletes the user's reaction on the event. Removing an absent
// reaction is a no-op.
func (r *ReactionRepository) Remove(eventID, userID int) error {
	r.log.Debug("removing reaction", "event_id", eventID, "user_id", userID)

	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&collab.Reaction{}).Error; err != nil {
		r.log.Error("failed to remove reaction", "event_id", eventID, "user_id", userID, "error", err)
		return fmt.Errorf("failed to remove reaction: %w", err)
	}

	return nil
}

func (r *ReactionRepository) GetByEvent(eventID int) ([]*collab.Reaction, error) {
	r.log.Debug("retrieving reactions by event", "event_id", eventID)

	var reactions []*collab.Reaction
	if err := r.db.Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&reactions).Error; err != nil {
		r.log.Error("failed to retrieve event reactions", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve event reactions: %w", err)
	}

	r.log.Debug("event reactions retrieved", "event_id", eventID, "count", len(reactions))
	return reactions, nil
}
