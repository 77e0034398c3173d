package storage

import (
	"time"

	"github.com/duetcal/duetcal-api/internal/domain/calendar"
	"github.com/duetcal/duetcal-api/internal/domain/collab"
	"github.com/duetcal/duetcal-api/internal/domain/event"
	"github.com/duetcal/duetcal-api/internal/domain/partner"
	"github.com/duetcal/duetcal-api/internal/domain/user"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	Create(u *user.User) error
	GetByID(id int) (*user.User, error)
	GetByUsername(username string) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	UpdateAvatar(id int, avatar string) error
}

// EventRepository defines the persistence operations for events. Listing
// queries order by (date, start_time) ascending with the primary key as the
// stable tie-break, and treat a date range as inclusive on both ends.
type EventRepository interface {
	Create(e *event.Event) error
	GetByID(id int) (*event.Event, error)
	Update(e *event.Event) error
	// Delete removes the event together with its participants, comments and
	// reactions.
	Delete(id int) error
	GetByOwner(ownerID int, r *event.DateRange) ([]*event.Event, error)
	GetByOwnersAndPrivacy(ownerIDs []int, privacies []event.Privacy, r *event.DateRange) ([]*event.Event, error)
}

// ParticipantRepository defines the persistence operations for per-event
// access grants. Upsert keys on the (event, user) pair.
type ParticipantRepository interface {
	Upsert(p *event.Participant) error
	Remove(eventID, userID int) error
	Get(eventID, userID int) (*event.Participant, error)
	GetByEvent(eventID int) ([]*event.ParticipantProfile, error)
	GetByEventAndUser(eventID, userID int) (bool, error)
}

// CommentRepository defines the persistence operations for event comments.
type CommentRepository interface {
	Create(c *collab.Comment) error
	GetByID(id int) (*collab.Comment, error)
	GetByEvent(eventID int) ([]collab.CommentProfile, error)
}

// ReactionRepository defines the persistence operations for event reactions.
type ReactionRepository interface {
	Create(r *collab.Reaction) error
	Remove(eventID, userID int) error
	GetByEvent(eventID int) ([]*collab.Reaction, error)
}

// PartnerRepository defines the persistence operations for partner links.
type PartnerRepository interface {
	Create(l *partner.Link) error
	GetByID(id int) (*partner.Link, error)
	// UpdateStatus resolves a link that is still pending. A link that is
	// absent or already resolved yields NotFoundError, so a terminal status
	// can never be overwritten.
	UpdateStatus(id int, status partner.Status) error
	// GetAcceptedPartnerIDs returns the users this user invited who accepted:
	// the outgoing side of the link.
	GetAcceptedPartnerIDs(userID int) ([]int, error)
	// GetAcceptedInviterIDs returns the users whose invitations this user
	// accepted: the incoming side, whose partner-level events the user may
	// see.
	GetAcceptedInviterIDs(userID int) ([]int, error)
	// HasActiveLink reports whether a pending or accepted link already exists
	// from userID to partnerID.
	HasActiveLink(userID, partnerID int) (bool, error)
	GetPendingIncoming(userID int) ([]partner.Profile, error)
	GetAccepted(userID int) ([]partner.Profile, error)
}

// CalendarRepository defines the persistence operations for external
// calendar records.
type CalendarRepository interface {
	Create(c *calendar.ExternalCalendar) error
	GetByUser(userID int) ([]*calendar.ExternalCalendar, error)
	GetSyncEnabled() ([]*calendar.ExternalCalendar, error)
	TouchLastSynced(id int, at time.Time) error
}

// RepositoryContainer bundles every repository behind one handle and provides
// the transaction boundary the services run multi-step mutations in.
type RepositoryContainer interface {
	Users() UserRepository
	Events() EventRepository
	Participants() ParticipantRepository
	Comments() CommentRepository
	Reactions() ReactionRepository
	Partners() PartnerRepository
	Calendars() CalendarRepository

	// WithTransaction runs fn against a container whose repositories share a
	// single transaction. A non-nil error from fn rolls everything back.
	WithTransaction(fn func(RepositoryContainer) error) error

	Health() error
	Close() error
}
