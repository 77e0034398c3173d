package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/domain/event"
)

func TestOwnerAlwaysSeesOwnEvents(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	for _, privacy := range []string{"private", "partner", "public"} {
		eventID := env.createEvent(t, alice.ID, CreateEventRequest{
			Title:   "Event " + privacy,
			Privacy: privacy,
		})

		ok, err := env.visibility.CanView(alice.ID, eventID)
		require.NoError(t, err)
		assert.True(t, ok, "owner should see their %s event", privacy)
	}
}

func TestPublicEventsVisibleToAnyone(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Town hall", Privacy: "public"})

	ok, err := env.visibility.CanView(bob.ID, eventID)
	require.NoError(t, err)
	assert.True(t, ok, "public events should be visible to any user")
}

func TestPartnerEventVisibility(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Dinner", Privacy: "partner"})

	ok, err := env.visibility.CanView(bob.ID, eventID)
	require.NoError(t, err)
	assert.False(t, ok, "partner event should be hidden before acceptance")

	env.acceptedPartners(t, alice.ID, "bob@example.com", bob.ID)

	ok, err = env.visibility.CanView(bob.ID, eventID)
	require.NoError(t, err)
	assert.True(t, ok, "accepted partner should see partner events")

	ok, err = env.visibility.CanView(carol.ID, eventID)
	require.NoError(t, err)
	assert.False(t, ok, "unrelated user should not see partner events")
}

func TestPrivateEventIsolation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Standup", Privacy: "private"})

	env.acceptedPartners(t, alice.ID, "bob@example.com", bob.ID)

	ok, err := env.visibility.CanView(bob.ID, eventID)
	require.NoError(t, err)
	assert.False(t, ok, "private events stay hidden even from accepted partners")
}

func TestPrivateEventVisibleToGrantedParticipant(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{
		Title:        "Secret planning",
		Privacy:      "private",
		Participants: []ParticipantGrant{{UserID: bob.ID}},
	})

	ok, err := env.visibility.CanView(bob.ID, eventID)
	require.NoError(t, err)
	assert.True(t, ok, "explicit grant should open a private event")

	shared, err := env.visibility.ListSharedEvents(bob.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, shared, "grant-only events never appear in the shared feed")
}

func TestListOwnEventsDateRange(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	env.createEvent(t, alice.ID, CreateEventRequest{Title: "Standup", Date: "2024-03-01", StartTime: "09:00"})
	env.createEvent(t, alice.ID, CreateEventRequest{Title: "Review", Date: "2024-03-15", StartTime: "14:00", Period: "afternoon"})

	r := &event.DateRange{Start: mustDate(t, "2024-03-01"), End: mustDate(t, "2024-03-01")}
	events, err := env.visibility.ListOwnEvents(alice.ID, r)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0].Title)

	inverted := &event.DateRange{Start: mustDate(t, "2024-03-31"), End: mustDate(t, "2024-03-01")}
	events, err = env.visibility.ListOwnEvents(alice.ID, inverted)
	require.NoError(t, err)
	assert.Empty(t, events, "inverted range yields an empty list, not an error")
}

func TestEventOrdering(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	env.createEvent(t, alice.ID, CreateEventRequest{Title: "Later day", Date: "2024-03-02", StartTime: "08:00"})
	env.createEvent(t, alice.ID, CreateEventRequest{Title: "Second slot", Date: "2024-03-01", StartTime: "14:00", Period: "afternoon"})
	env.createEvent(t, alice.ID, CreateEventRequest{Title: "First slot", Date: "2024-03-01", StartTime: "09:00"})

	events, err := env.visibility.ListOwnEvents(alice.ID, nil)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "First slot", events[0].Title)
	assert.Equal(t, "Second slot", events[1].Title)
	assert.Equal(t, "Later day", events[2].Title)
}

func TestSharedFeedCoversPartnerAndPublicOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	env.createEvent(t, alice.ID, CreateEventRequest{Title: "Dinner", Privacy: "partner"})
	env.createEvent(t, alice.ID, CreateEventRequest{Title: "Town hall", Privacy: "public", StartTime: "18:00", Period: "night"})
	env.createEvent(t, alice.ID, CreateEventRequest{Title: "Journal", Privacy: "private", StartTime: "22:00", Period: "night"})

	shared, err := env.visibility.ListSharedEvents(bob.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, shared, "no shared events before any accepted link")

	env.acceptedPartners(t, alice.ID, "bob@example.com", bob.ID)

	shared, err = env.visibility.ListSharedEvents(bob.ID, nil)
	require.NoError(t, err)
	require.Len(t, shared, 2)
	titles := []string{shared[0].Title, shared[1].Title}
	assert.Contains(t, titles, "Dinner")
	assert.Contains(t, titles, "Town hall")
}

func TestPostAcceptanceEventsReachTheInvitee(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	env.acceptedPartners(t, alice.ID, "bob@example.com", bob.ID)

	movie := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Movie", Privacy: "partner", StartTime: "20:00", Period: "night"})

	ok, err := env.visibility.CanView(bob.ID, movie)
	require.NoError(t, err)
	assert.True(t, ok, "the invitee sees the inviter's partner event without a grant")

	shared, err := env.visibility.ListSharedEvents(bob.ID, nil)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "Movie", shared[0].Title)

	shared, err = env.visibility.ListSharedEvents(alice.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, shared, "the inviter gains no view of the invitee's calendar")
}

func TestCanEditRequiresOwnershipOrEditGrant(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{
		Title: "Planning",
		Participants: []ParticipantGrant{
			{UserID: bob.ID, Permission: "edit"},
			{UserID: carol.ID, Permission: "view"},
		},
	})

	ok, err := env.visibility.CanEdit(alice.ID, eventID)
	require.NoError(t, err)
	assert.True(t, ok, "owner can always edit")

	ok, err = env.visibility.CanEdit(bob.ID, eventID)
	require.NoError(t, err)
	assert.True(t, ok, "edit grant allows editing")

	ok, err = env.visibility.CanEdit(carol.ID, eventID)
	require.NoError(t, err)
	assert.False(t, ok, "view grant does not allow editing")
}

func mustDate(t *testing.T, s string) event.Date {
	t.Helper()
	d, err := event.ParseDate(s)
	require.NoError(t, err)
	return d
}
