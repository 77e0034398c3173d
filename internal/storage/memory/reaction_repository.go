package memory

import (
	"sort"

	"github.com/duetcal/duetcal-api/internal/domain/collab"
)

// ReactionRepository implements storage.ReactionRepository on the shared
// store.
type ReactionRepository struct {
	store *store
}

func (r *ReactionRepository) Create(reaction *collab.Reaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reaction.ID = r.store.next("reactions")
	r.store.reactions[reaction.ID] = *reaction
	return nil
}

func (r *ReactionRepository) Remove(eventID, userID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.reactions {
		if existing.EventID == eventID && existing.UserID == userID {
			delete(r.store.reactions, id)
		}
	}
	return nil
}

func (r *ReactionRepository) GetByEvent(eventID int) ([]*collab.Reaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reactions := make([]*collab.Reaction, 0)
	for _, existing := range r.store.reactions {
		if existing.EventID == eventID {
			out := existing
			reactions = append(reactions, &out)
		}
	}
	sort.Slice(reactions, func(i, j int) bool { return reactions[i].ID < reactions[j].ID })
	return reactions, nil
}
