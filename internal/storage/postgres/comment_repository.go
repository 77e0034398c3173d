package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// CommentRepository implements storage.CommentRepository using GORM
type CommentRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:  db,
		log: logger.Repository("comment"),
	}
}

func (r *CommentRepository) Create(c *collab.Comment) error {
	r.log.Debug("creating comment", "event_id", c.EventID, "user_id", c.UserID)

	if err := r.db.Create(c).Error; err != nil {
		r.log.Error("failed to create comment", "event_id", c.EventID, "error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	r.log.Info("comment created successfully", "comment_id", c.ID, "event_id", c.EventID)
	return nil
}

func (r *CommentRepository) GetByID(id int) (*collab.Comment, error) {
	r.log.Debug("retrieving comment by ID", "comment_id", id)

	var c collab.Comment
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("comment", id)
		}
		r.log.Error("failed to retrieve comment", "comment_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve comment: %w", err)
	}

	return &c, nil
}

func (r *CommentRepository) GetByEvent(eventID int) ([]collab.CommentProfile, error) {
	r.log.Debug("retrieving comments by event", "event_id", eventID)

	var comments []collab.Comment
	if err := r.db.Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		r.log.Error("failed to retrieve event comments", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to retrieve event comments: %w", err)
	}

	profiles, err := publicProfiles(r.db, comments, func(c collab.Comment) int { return c.UserID })
	if err != nil {
		r.log.Error("failed to load comment author profiles", "event_id", eventID, "error", err)
		return nil, err
	}

	rows := make([]collab.CommentProfile, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, collab.CommentProfile{Comment: c, User: profiles[c.UserID]})
	}

	r.log.Debug("event comments retrieved", "event_id", eventID, "count", len(rows))
	return rows, nil
}
