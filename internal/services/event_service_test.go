package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/event"
)

func TestCreateEventReportsEveryInvalidField(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.events.Create(alice.ID, CreateEventRequest{
		Title:      "  ",
		Date:       "03/01/2024",
		StartTime:  "late",
		Period:     "midnight",
		Privacy:    "secret",
		Recurrence: "sometimes",
	})

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"title", "date", "start_time", "period", "privacy", "recurrence"} {
		assert.Contains(t, ve.Fields, field, "field %s should be reported", field)
	}
}

func TestCreateEventDefaults(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	e, err := env.events.Create(alice.ID, CreateEventRequest{
		Title:     "Standup",
		Date:      "2024-03-01",
		StartTime: "09:00",
		Period:    "morning",
	})
	require.NoError(t, err)
	assert.Equal(t, event.PrivacyPrivate, e.Privacy, "privacy defaults to private")
	assert.Equal(t, event.RecurrenceNone, e.Recurrence, "recurrence defaults to none")
	assert.Equal(t, "09:00:00", e.StartTime, "start time is normalized to HH:MM:SS")
}

func TestCreateEventWithRecurrenceRule(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	rule := "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO"
	e, err := env.events.Create(alice.ID, CreateEventRequest{
		Title:          "Biweekly sync",
		Date:           "2024-03-04",
		StartTime:      "10:00",
		Period:         "morning",
		Recurrence:     "custom",
		RecurrenceRule: &rule,
	})
	require.NoError(t, err)
	require.NotNil(t, e.RecurrenceRule)
	assert.Equal(t, rule, *e.RecurrenceRule)

	bad := "FREQ=SOMETIMES"
	_, err = env.events.Create(alice.ID, CreateEventRequest{
		Title:          "Broken",
		Date:           "2024-03-04",
		StartTime:      "10:00",
		Period:         "morning",
		Recurrence:     "custom",
		RecurrenceRule: &bad,
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "recurrence_rule")
}

func TestGrantNormalization(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{
		Title: "Planning",
		Participants: []ParticipantGrant{
			{UserID: bob.ID},
			{UserID: carol.ID, Permission: "edit"},
			{UserID: alice.ID, Permission: "edit"},
		},
	})

	participants, err := env.events.ListParticipants(eventID)
	require.NoError(t, err)
	require.Len(t, participants, 2, "the owner never gets a participant row")

	byUser := map[int]event.Permission{}
	for _, p := range participants {
		byUser[p.UserID] = p.Permission
	}
	assert.Equal(t, event.PermissionView, byUser[bob.ID], "absent permission defaults to view")
	assert.Equal(t, event.PermissionEdit, byUser[carol.ID], "explicit edit is honored")
}

func TestUnknownPermissionRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.events.Create(alice.ID, CreateEventRequest{
		Title:        "Planning",
		Date:         "2024-03-01",
		StartTime:    "09:00",
		Period:       "morning",
		Participants: []ParticipantGrant{{UserID: bob.ID, Permission: "admin"}},
	})

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "participants")
}

func TestUpdateIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{
		Title:        "Planning",
		Participants: []ParticipantGrant{{UserID: bob.ID, Permission: "edit"}},
	})

	title := "Hijacked"
	_, err := env.events.Update(bob.ID, eventID, UpdateEventRequest{Title: &title})
	assert.True(t, common.IsForbidden(err), "edit grants do not extend to the event record")

	title = "Renamed"
	e, err := env.events.Update(alice.ID, eventID, UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", e.Title)
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{
		Title:     "Standup",
		Date:      "2024-03-01",
		StartTime: "09:00",
		Period:    "morning",
	})

	privacy := "partner"
	e, err := env.events.Update(alice.ID, eventID, UpdateEventRequest{Privacy: &privacy})
	require.NoError(t, err)
	assert.Equal(t, event.PrivacyPartner, e.Privacy)
	assert.Equal(t, "Standup", e.Title, "unset fields stay unchanged")
	assert.Equal(t, "09:00:00", e.StartTime, "unset fields stay unchanged")
}

func TestDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{
		Title:        "Planning",
		Privacy:      "public",
		Participants: []ParticipantGrant{{UserID: bob.ID}},
	})

	_, err := env.collab.AddComment(bob.ID, eventID, "count me in", nil)
	require.NoError(t, err)
	_, err = env.collab.UpsertReaction(bob.ID, eventID, "heart")
	require.NoError(t, err)

	err = env.events.Delete(bob.ID, eventID)
	assert.True(t, common.IsForbidden(err), "only the owner deletes")

	require.NoError(t, env.events.Delete(alice.ID, eventID))

	_, err = env.repos.Events().GetByID(eventID)
	assert.True(t, common.IsNotFound(err))

	comments, err := env.repos.Comments().GetByEvent(eventID)
	require.NoError(t, err)
	assert.Empty(t, comments, "comments go with the event")

	reactions, err := env.repos.Reactions().GetByEvent(eventID)
	require.NoError(t, err)
	assert.Empty(t, reactions, "reactions go with the event")
}

func TestParticipantManagement(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Planning"})

	_, err := env.events.AddParticipant(carol.ID, eventID, ParticipantGrant{UserID: bob.ID})
	assert.True(t, common.IsForbidden(err), "only the owner manages participants")

	p, err := env.events.AddParticipant(alice.ID, eventID, ParticipantGrant{UserID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, event.PermissionView, p.Permission)

	p, err = env.events.SetPermission(alice.ID, eventID, bob.ID, "edit")
	require.NoError(t, err)
	assert.Equal(t, event.PermissionEdit, p.Permission)

	participants, err := env.events.ListParticipants(eventID)
	require.NoError(t, err)
	require.Len(t, participants, 1, "re-granting updates the existing row")

	require.NoError(t, env.events.RemoveParticipant(alice.ID, eventID, bob.ID))
	require.NoError(t, env.events.RemoveParticipant(alice.ID, eventID, bob.ID), "removal is idempotent")

	participants, err = env.events.ListParticipants(eventID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}
