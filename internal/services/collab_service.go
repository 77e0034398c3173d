package services

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/storage"
)

// CollabService keeps the comments and reactions attached to events. It is
// authorization-agnostic: callers verify read access through the visibility
// service before reaching it.
type CollabService struct {
	repos storage.RepositoryContainer
	log   *log.Logger
}

// NewCollabService creates a new collaboration service instance
func NewCollabService(repos storage.RepositoryContainer) *CollabService {
	return &CollabService{
		repos: repos,
		log:   logger.Service("collab"),
	}
}

// AddComment attaches a comment to an event. A reply must target a top-level
// comment on the same event.
func (s *CollabService) AddComment(authorID, eventID int, content string, parentID *int) (*collab.Comment, error) {
	if strings.TrimSpace(content) == "" {
		ve := common.NewValidationError()
		ve.Add("content", "content is required")
		return nil, ve
	}

	if parentID != nil {
		parent, err := s.repos.Comments().GetByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent.EventID != eventID {
			return nil, common.NewNotFound("comment", *parentID)
		}
		if parent.IsReply() {
			ve := common.NewValidationError()
			ve.Add("parent_id", "replies to replies are not allowed")
			return nil, ve
		}
	}

	c := &collab.Comment{
		EventID:  eventID,
		UserID:   authorID,
		Content:  content,
		ParentID: parentID,
	}
	if err := s.repos.Comments().Create(c); err != nil {
		return nil, err
	}

	s.log.Info("comment added", "comment_id", c.ID, "event_id", eventID, "author_id", authorID)
	return c, nil
}

// ListComments returns the event's comments as a flat list ordered by
// creation time, each with its author's public profile.
func (s *CollabService) ListComments(eventID int) ([]collab.CommentProfile, error) {
	return s.repos.Comments().GetByEvent(eventID)
}

// ListCommentThreads returns the event's comments grouped into a two-level
// forest for display.
func (s *CollabService) ListCommentThreads(eventID int) ([]collab.Thread, error) {
	comments, err := s.repos.Comments().GetByEvent(eventID)
	if err != nil {
		return nil, err
	}
	return collab.BuildThreads(comments), nil
}

// UpsertReaction replaces any existing reaction by this user on the event
// with the new one. Removal and insertion run in one transaction so
// concurrent upserts never leave two rows.
func (s *CollabService) UpsertReaction(userID, eventID int, reactionType string) (*collab.Reaction, error) {
	if strings.TrimSpace(reactionType) == "" {
		ve := common.NewValidationError()
		ve.Add("type", "type is required")
		return nil, ve
	}

	r := &collab.Reaction{
		EventID: eventID,
		UserID:  userID,
		Type:    reactionType,
	}

	err := s.repos.WithTransaction(func(tx storage.RepositoryContainer) error {
		if err := tx.Reactions().Remove(eventID, userID); err != nil {
			return err
		}
		return tx.Reactions().Create(r)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("reaction upserted", "event_id", eventID, "user_id", userID, "type", reactionType)
	return r, nil
}

// RemoveReaction deletes the user's reaction on the event, if any. Removing
// a reaction that does not exist is not an error.
func (s *CollabService) RemoveReaction(userID, eventID int) error {
	return s.repos.Reactions().Remove(eventID, userID)
}

// ListReactions returns all reactions on an event.
func (s *CollabService) ListReactions(eventID int) ([]*collab.Reaction, error) {
	return s.repos.Reactions().GetByEvent(eventID)
}
