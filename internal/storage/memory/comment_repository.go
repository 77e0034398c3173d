package memory

import (
	"sort"

	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/domain/common"
)

// CommentRepository implements storage.CommentRepository on the shared store.
type CommentRepository struct {
	store *store
}

func (r *CommentRepository) Create(c *collab.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.ID = r.store.next("comments")
	r.store.comments[c.ID] = *c
	return nil
}

func (r *CommentRepository) GetByID(id int) (*collab.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.comments[id]
	if !ok {
		return nil, common.NewNotFound("comment", id)
	}
	return &c, nil
}

func (r *CommentRepository) GetByEvent(eventID int) ([]collab.CommentProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	profiles := make([]collab.CommentProfile, 0)
	for _, c := range r.store.comments {
		if c.EventID != eventID {
			continue
		}
		u, ok := r.store.users[c.UserID]
		if !ok {
			continue
		}
		profiles = append(profiles, collab.CommentProfile{Comment: c, User: u.Public()})
	}
	sort.Slice(profiles, func(i, j int) bool {
		if !profiles[i].CreatedAt.Equal(profiles[j].CreatedAt) {
			return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}
