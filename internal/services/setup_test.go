package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/domain/user"
	"github.com/duetcal/duetcal-api/internal/storage"
	"github.com/duetcal/duetcal-api/internal/storage/memory"
)

type testEnv struct {
	repos      storage.RepositoryContainer
	users      *UserService
	partners   *PartnerService
	visibility *VisibilityService
	events     *EventService
	collab     *CollabService
	calendars  *CalendarService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := memory.NewContainer()
	return &testEnv{
		repos:      repos,
		users:      NewUserService(repos),
		partners:   NewPartnerService(repos),
		visibility: NewVisibilityService(repos),
		events:     NewEventService(repos),
		collab:     NewCollabService(repos),
		calendars:  NewCalendarService(repos),
	}
}

func (env *testEnv) createUser(t *testing.T, username string) *user.User {
	t.Helper()

	u, err := env.users.Register(RegisterRequest{
		Username: username,
		Password: "correct-horse-battery",
		Email:    username + "@example.com",
		FullName: "Test " + username,
	})
	require.NoError(t, err, "user %s should register", username)
	return u
}

func (env *testEnv) createEvent(t *testing.T, ownerID int, req CreateEventRequest) int {
	t.Helper()

	if req.Period == "" {
		req.Period = "morning"
	}
	if req.Date == "" {
		req.Date = "2024-03-01"
	}
	if req.StartTime == "" {
		req.StartTime = "09:00"
	}

	e, err := env.events.Create(ownerID, req)
	require.NoError(t, err, "event %q should be created", req.Title)
	return e.ID
}

// acceptedPartners wires an accepted link from inviter to invitee and returns
// the link ID.
func (env *testEnv) acceptedPartners(t *testing.T, inviterID int, inviteeEmail string, inviteeID int) int {
	t.Helper()

	link, err := env.partners.Invite(inviterID, InviteRequest{PartnerEmail: inviteeEmail})
	require.NoError(t, err, "invitation should be created")

	accepted, err := env.partners.Respond(inviteeID, link.ID, "accepted")
	require.NoError(t, err, "invitation should be accepted")
	return accepted.ID
}
