package memory

import (
	"sort"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
)

// EventRepository implements storage.EventRepository on the shared store.
type EventRepository struct {
	store *store
}

func (r *EventRepository) Create(e *event.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e.ID = r.store.next("events")
	r.store.events[e.ID] = *e
	return nil
}

func (r *EventRepository) GetByID(id int) (*event.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.events[id]
	if !ok {
		return nil, common.NewNotFound("event", id)
	}
	return &e, nil
}

func (r *EventRepository) Update(e *event.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[e.ID]; !ok {
		return common.NewNotFound("event", e.ID)
	}
	r.store.events[e.ID] = *e
	return nil
}

func (r *EventRepository) Delete(id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[id]; !ok {
		return common.NewNotFound("event", id)
	}
	delete(r.store.events, id)

	for pid, p := range r.store.participants {
		if p.EventID == id {
			delete(r.store.participants, pid)
		}
	}
	for cid, c := range r.store.comments {
		if c.EventID == id {
			delete(r.store.comments, cid)
		}
	}
	for rid, reaction := range r.store.reactions {
		if reaction.EventID == id {
			delete(r.store.reactions, rid)
		}
	}
	return nil
}

func (r *EventRepository) GetByOwner(ownerID int, dr *event.DateRange) ([]*event.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	events := make([]*event.Event, 0)
	for _, e := range r.store.events {
		if e.OwnerID != ownerID {
			continue
		}
		if dr != nil && !dr.Contains(e.Date) {
			continue
		}
		out := e
		events = append(events, &out)
	}
	sortEvents(events)
	return events, nil
}

func (r *EventRepository) GetByOwnersAndPrivacy(ownerIDs []int, privacies []event.Privacy, dr *event.DateRange) ([]*event.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owners := make(map[int]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	levels := make(map[event.Privacy]bool, len(privacies))
	for _, p := range privacies {
		levels[p] = true
	}

	events := make([]*event.Event, 0)
	for _, e := range r.store.events {
		if !owners[e.OwnerID] || !levels[e.Privacy] {
			continue
		}
		if dr != nil && !dr.Contains(e.Date) {
			continue
		}
		out := e
		events = append(events, &out)
	}
	sortEvents(events)
	return events, nil
}

// sortEvents orders by date, then start time, then ID as the stable tie-break.
// Start times are canonical HH:MM:SS strings, so byte order is clock order.
func sortEvents(events []*event.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date.Time) {
			return events[i].Date.Before(events[j].Date)
		}
		if events[i].StartTime != events[j].StartTime {
			return events[i].StartTime < events[j].StartTime
		}
		return events[i].ID < events[j].ID
	})
}
