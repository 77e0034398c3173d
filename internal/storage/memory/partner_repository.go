package memory

import (
	"sort"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/partner"
)

// PartnerRepository implements storage.PartnerRepository on the shared store.
type PartnerRepository struct {
	store *store
}

func (r *PartnerRepository) Create(l *partner.Link) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l.ID = r.store.next("partners")
	r.store.partners[l.ID] = *l
	return nil
}

func (r *PartnerRepository) GetByID(id int) (*partner.Link, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.partners[id]
	if !ok {
		return nil, common.NewNotFound("partner request", id)
	}
	return &l, nil
}

// UpdateStatus resolves the link only while it is still pending, mirroring
// the conditional UPDATE of the postgres backend.
func (r *PartnerRepository) UpdateStatus(id int, status partner.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.partners[id]
	if !ok || l.Status != partner.StatusPending {
		return common.NewNotFound("pending partner request", id)
	}
	l.Status = status
	r.store.partners[id] = l
	return nil
}

func (r *PartnerRepository) GetAcceptedPartnerIDs(userID int) ([]int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]int, 0)
	for _, l := range r.store.partners {
		if l.UserID == userID && l.Status == partner.StatusAccepted {
			ids = append(ids, l.PartnerID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *PartnerRepository) GetAcceptedInviterIDs(userID int) ([]int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]int, 0)
	for _, l := range r.store.partners {
		if l.PartnerID == userID && l.Status == partner.StatusAccepted {
			ids = append(ids, l.UserID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *PartnerRepository) HasActiveLink(userID, partnerID int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, l := range r.store.partners {
		if l.UserID != userID || l.PartnerID != partnerID {
			continue
		}
		if l.Status == partner.StatusPending || l.Status == partner.StatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (r *PartnerRepository) GetPendingIncoming(userID int) ([]partner.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	profiles := make([]partner.Profile, 0)
	for _, l := range r.store.partners {
		if l.PartnerID != userID || l.Status != partner.StatusPending {
			continue
		}
		inviter, ok := r.store.users[l.UserID]
		if !ok {
			continue
		}
		profiles = append(profiles, partner.Profile{Link: l, Partner: inviter.Public()})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

func (r *PartnerRepository) GetAccepted(userID int) ([]partner.Profile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	profiles := make([]partner.Profile, 0)
	for _, l := range r.store.partners {
		if l.UserID != userID || l.Status != partner.StatusAccepted {
			continue
		}
		invitee, ok := r.store.users[l.PartnerID]
		if !ok {
			continue
		}
		profiles = append(profiles, partner.Profile{Link: l, Partner: invitee.Public()})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}
