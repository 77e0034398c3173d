package memory

import (
	"sort"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
)

// ParticipantRepository implements storage.ParticipantRepository on the
// shared store.
type ParticipantRepository struct {
	store *store
}

func (r *ParticipantRepository) Upsert(p *event.Participant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.participants {
		if existing.EventID == p.EventID && existing.UserID == p.UserID {
			existing.Permission = p.Permission
			r.store.participants[id] = existing
			*p = existing
			return nil
		}
	}

	p.ID = r.store.next("event_participants")
	r.store.participants[p.ID] = *p
	return nil
}

func (r *ParticipantRepository) Remove(eventID, userID int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.participants {
		if existing.EventID == eventID && existing.UserID == userID {
			delete(r.store.participants, id)
			return nil
		}
	}
	return nil
}

func (r *ParticipantRepository) Get(eventID, userID int) (*event.Participant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.participants {
		if existing.EventID == eventID && existing.UserID == userID {
			out := existing
			return &out, nil
		}
	}
	return nil, common.NewNotFound("participant", 0)
}

func (r *ParticipantRepository) GetByEvent(eventID int) ([]*event.ParticipantProfile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	profiles := make([]*event.ParticipantProfile, 0)
	for _, p := range r.store.participants {
		if p.EventID != eventID {
			continue
		}
		u, ok := r.store.users[p.UserID]
		if !ok {
			continue
		}
		profiles = append(profiles, &event.ParticipantProfile{Participant: p, User: u.Public()})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

func (r *ParticipantRepository) GetByEventAndUser(eventID, userID int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.participants {
		if existing.EventID == eventID && existing.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
