package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/domain/common"
)

func TestReactionUpsertLeavesOneRow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Party", Privacy: "public"})

	_, err := env.collab.UpsertReaction(alice.ID, eventID, "heart")
	require.NoError(t, err)
	_, err = env.collab.UpsertReaction(alice.ID, eventID, "heart")
	require.NoError(t, err)

	reactions, err := env.collab.ListReactions(eventID)
	require.NoError(t, err)
	require.Len(t, reactions, 1, "repeated upserts leave exactly one row")
	assert.Equal(t, "heart", reactions[0].Type)

	_, err = env.collab.UpsertReaction(alice.ID, eventID, "laugh")
	require.NoError(t, err)

	reactions, err = env.collab.ListReactions(eventID)
	require.NoError(t, err)
	require.Len(t, reactions, 1, "a new type replaces the old reaction")
	assert.Equal(t, "laugh", reactions[0].Type)
}

func TestReactionsArePerUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Party", Privacy: "public"})

	_, err := env.collab.UpsertReaction(alice.ID, eventID, "heart")
	require.NoError(t, err)
	_, err = env.collab.UpsertReaction(bob.ID, eventID, "laugh")
	require.NoError(t, err)

	reactions, err := env.collab.ListReactions(eventID)
	require.NoError(t, err)
	assert.Len(t, reactions, 2, "different users keep separate reactions")
}

func TestRemoveReactionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Party"})

	require.NoError(t, env.collab.RemoveReaction(alice.ID, eventID), "removing a missing reaction is not an error")

	_, err := env.collab.UpsertReaction(alice.ID, eventID, "heart")
	require.NoError(t, err)
	require.NoError(t, env.collab.RemoveReaction(alice.ID, eventID))

	reactions, err := env.collab.ListReactions(eventID)
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestAddCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Party"})

	_, err := env.collab.AddComment(alice.ID, eventID, "   ", nil)
	assert.True(t, common.IsValidation(err), "blank content fails validation")

	missing := 99
	_, err = env.collab.AddComment(alice.ID, eventID, "nice!", &missing)
	assert.True(t, common.IsNotFound(err), "replying to a missing comment fails")
}

func TestReplyMustTargetTopLevelCommentOnSameEvent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Party"})
	otherID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Other", StartTime: "10:00"})

	top, err := env.collab.AddComment(alice.ID, eventID, "who's coming?", nil)
	require.NoError(t, err)

	_, err = env.collab.AddComment(alice.ID, otherID, "me!", &top.ID)
	assert.True(t, common.IsNotFound(err), "the parent must live on the same event")

	reply, err := env.collab.AddComment(alice.ID, eventID, "me!", &top.ID)
	require.NoError(t, err)

	_, err = env.collab.AddComment(alice.ID, eventID, "me too!", &reply.ID)
	assert.True(t, common.IsValidation(err), "replies to replies are rejected")
}

func TestCommentThreads(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	eventID := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Party", Privacy: "public"})

	first, err := env.collab.AddComment(alice.ID, eventID, "who's coming?", nil)
	require.NoError(t, err)
	second, err := env.collab.AddComment(bob.ID, eventID, "bring snacks", nil)
	require.NoError(t, err)
	_, err = env.collab.AddComment(bob.ID, eventID, "me!", &first.ID)
	require.NoError(t, err)

	flat, err := env.collab.ListComments(eventID)
	require.NoError(t, err)
	require.Len(t, flat, 3)
	assert.Equal(t, "alice", flat[0].User.Username, "comments carry the author's profile")

	threads, err := env.collab.ListCommentThreads(eventID)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, first.ID, threads[0].ID)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, "me!", threads[0].Replies[0].Content)
	assert.Equal(t, second.ID, threads[1].ID)
	assert.Empty(t, threads[1].Replies)
}
