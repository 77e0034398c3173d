package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/domain/common"
	"github.com/duetcal/duetcal-api/internal/domain/partner"
)

func TestInviteCreatesPendingLink(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	link, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, link.UserID)
	assert.Equal(t, bob.ID, link.PartnerID)
	assert.Equal(t, partner.StatusPending, link.Status)
	assert.True(t, link.ShareAll, "share_all defaults to true")
	assert.False(t, link.ShareRaftOnly, "share_raft_only defaults to false")
}

func TestInviteUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "nobody@example.com"})
	assert.True(t, common.IsNotFound(err), "unknown email should be a not-found error")
}

func TestInviteSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "alice@example.com"})
	assert.True(t, common.IsValidation(err), "self-invite should fail validation")
}

func TestDuplicateInviteConflicts(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")

	_, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	require.NoError(t, err)

	_, err = env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	assert.True(t, common.IsConflict(err), "duplicate pending invitation should conflict")
}

func TestOnlyInviteeMayRespond(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	link, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	require.NoError(t, err)

	_, err = env.partners.Respond(carol.ID, link.ID, partner.StatusAccepted)
	assert.True(t, common.IsForbidden(err), "a third party must not respond")

	_, err = env.partners.Respond(alice.ID, link.ID, partner.StatusAccepted)
	assert.True(t, common.IsForbidden(err), "the inviter must not respond to their own request")

	_, err = env.partners.Respond(bob.ID, link.ID, partner.StatusAccepted)
	assert.NoError(t, err, "the invitee responds")
}

func TestResolvedLinkNeverChangesAgain(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	link, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	require.NoError(t, err)

	_, err = env.partners.Respond(bob.ID, link.ID, partner.StatusRejected)
	require.NoError(t, err)

	_, err = env.partners.Respond(bob.ID, link.ID, partner.StatusAccepted)
	assert.True(t, common.IsNotFound(err), "a resolved link is no longer a pending request")

	ids, err := env.partners.AcceptedPartnerIDs(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, ids, "rejection must not create a partner relationship")
}

func TestLateStatusWriteCannotOverwriteResolution(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	link, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	require.NoError(t, err)

	_, err = env.partners.Respond(bob.ID, link.ID, partner.StatusAccepted)
	require.NoError(t, err)

	// A racing responder that read the link while it was still pending lands
	// its write only now; the conditional update must refuse it.
	err = env.repos.Partners().UpdateStatus(link.ID, partner.StatusRejected)
	assert.True(t, common.IsNotFound(err), "a resolved link accepts no further status writes")

	resolved, err := env.repos.Partners().GetByID(link.ID)
	require.NoError(t, err)
	assert.Equal(t, partner.StatusAccepted, resolved.Status)
}

func TestRespondRejectsUnknownDecision(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	link, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	require.NoError(t, err)

	_, err = env.partners.Respond(bob.ID, link.ID, partner.Status("maybe"))
	assert.True(t, common.IsValidation(err), "only accepted or rejected are legal decisions")
}

func TestAcceptanceIsDirectional(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	env.acceptedPartners(t, alice.ID, "bob@example.com", bob.ID)

	aliceEvent := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Dinner", Privacy: "partner"})
	bobEvent := env.createEvent(t, bob.ID, CreateEventRequest{Title: "Hike", Privacy: "partner"})

	ok, err := env.visibility.CanView(bob.ID, aliceEvent)
	require.NoError(t, err)
	assert.True(t, ok, "invitee sees the inviter's partner events")

	ok, err = env.visibility.CanView(alice.ID, bobEvent)
	require.NoError(t, err)
	assert.False(t, ok, "the reverse direction needs its own invitation")

	outgoing, err := env.partners.AcceptedPartnerIDs(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{bob.ID}, outgoing, "the inviter's accepted set holds the invitee")

	outgoing, err = env.partners.AcceptedPartnerIDs(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, outgoing, "acceptance does not create a reciprocal link")
}

func TestAcceptanceFanOutIsASnapshot(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	before1 := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Dinner", Privacy: "partner"})
	before2 := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Brunch", Privacy: "partner", StartTime: "11:00"})
	privateEvent := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Journal", Privacy: "private", StartTime: "22:00", Period: "night"})

	env.acceptedPartners(t, alice.ID, "bob@example.com", bob.ID)

	for _, id := range []int{before1, before2} {
		granted, err := env.repos.Participants().GetByEventAndUser(id, bob.ID)
		require.NoError(t, err)
		assert.True(t, granted, "pre-existing partner events get a view grant on acceptance")
	}

	granted, err := env.repos.Participants().GetByEventAndUser(privateEvent, bob.ID)
	require.NoError(t, err)
	assert.False(t, granted, "private events are excluded from the fan-out")

	after := env.createEvent(t, alice.ID, CreateEventRequest{Title: "Movie", Privacy: "partner", StartTime: "20:00", Period: "night"})

	granted, err = env.repos.Participants().GetByEventAndUser(after, bob.ID)
	require.NoError(t, err)
	assert.False(t, granted, "events created after acceptance get no participant row")

	ok, err := env.visibility.CanView(bob.ID, after)
	require.NoError(t, err)
	assert.True(t, ok, "later events are visible through the partner rule directly")
}

func TestPendingAndAcceptedListings(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	link, err := env.partners.Invite(alice.ID, InviteRequest{PartnerEmail: "bob@example.com"})
	require.NoError(t, err)

	pending, err := env.partners.PendingIncoming(bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, link.ID, pending[0].ID)
	assert.Equal(t, "alice", pending[0].Partner.Username, "incoming requests carry the inviter's profile")

	_, err = env.partners.Respond(bob.ID, link.ID, partner.StatusAccepted)
	require.NoError(t, err)

	pending, err = env.partners.PendingIncoming(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, pending, "accepted requests leave the pending list")

	accepted, err := env.partners.Accepted(alice.ID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "bob", accepted[0].Partner.Username, "accepted listings carry the invitee's profile")
}
