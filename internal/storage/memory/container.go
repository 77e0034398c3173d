// Package memory provides an in-process implementation of the repository
// container. It backs the memory storage backend and the service tests, and
// mirrors the ordering and not-found semantics of the PostgreSQL backend.
package memory

import (
	"sync"

	"github.com/duetcal/duetcal-api/internal/domain/calendar"
	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/domain/partner"
	"github.com/duetcal/duetcal-api/internal/domain/user"
	"github.com/duetcal/duetcal-api/internal/storage"
)

// store is the shared mutable state behind every repository of one container.
type store struct {
	mu sync.Mutex

	users        map[int]user.User
	events       map[int]event.Event
	participants map[int]event.Participant
	comments     map[int]collab.Comment
	reactions    map[int]collab.Reaction
	partners     map[int]partner.Link
	calendars    map[int]calendar.ExternalCalendar

	nextID map[string]int
}

func newStore() *store {
	return &store{
		users:        make(map[int]user.User),
		events:       make(map[int]event.Event),
		participants: make(map[int]event.Participant),
		comments:     make(map[int]collab.Comment),
		reactions:    make(map[int]collab.Reaction),
		partners:     make(map[int]partner.Link),
		calendars:    make(map[int]calendar.ExternalCalendar),
		nextID:       make(map[string]int),
	}
}

// next hands out sequential IDs per table, starting at 1. Callers hold s.mu.
func (s *store) next(table string) int {
	s.nextID[table]++
	return s.nextID[table]
}

// Container implements storage.RepositoryContainer on in-process maps.
type Container struct {
	store *store

	users        *UserRepository
	events       *EventRepository
	participants *ParticipantRepository
	comments     *CommentRepository
	reactions    *ReactionRepository
	partners     *PartnerRepository
	calendars    *CalendarRepository
}

// NewContainer creates an empty in-memory repository container.
func NewContainer() *Container {
	s := newStore()
	return &Container{
		store:        s,
		users:        &UserRepository{store: s},
		events:       &EventRepository{store: s},
		participants: &ParticipantRepository{store: s},
		comments:     &CommentRepository{store: s},
		reactions:    &ReactionRepository{store: s},
		partners:     &PartnerRepository{store: s},
		calendars:    &CalendarRepository{store: s},
	}
}

func (c *Container) Users() storage.UserRepository               { return c.users }
func (c *Container) Events() storage.EventRepository             { return c.events }
func (c *Container) Participants() storage.ParticipantRepository { return c.participants }
func (c *Container) Comments() storage.CommentRepository         { return c.comments }
func (c *Container) Reactions() storage.ReactionRepository       { return c.reactions }
func (c *Container) Partners() storage.PartnerRepository         { return c.partners }
func (c *Container) Calendars() storage.CalendarRepository       { return c.calendars }

// WithTransaction runs fn against the same container. The memory backend
// offers atomic visibility but no rollback: a failing fn may leave earlier
// writes in place, which the backend accepts in exchange for simplicity.
func (c *Container) WithTransaction(fn func(storage.RepositoryContainer) error) error {
	return fn(c)
}

func (c *Container) Health() error { return nil }

func (c *Container) Close() error { return nil }
