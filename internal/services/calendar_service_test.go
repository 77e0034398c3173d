package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/domain/common"
)

func TestAddExternalCalendar(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	c, err := env.calendars.Add(alice.ID, AddCalendarRequest{
		Provider:   "google",
		ExternalID: "primary",
		Name:       "Work",
	})
	require.NoError(t, err)
	assert.True(t, c.SyncEnabled, "sync defaults to enabled")
	assert.Nil(t, c.LastSyncedAt, "no sync has happened yet")

	disabled := false
	c2, err := env.calendars.Add(alice.ID, AddCalendarRequest{
		Provider:    "apple",
		ExternalID:  "home",
		Name:        "Home",
		SyncEnabled: &disabled,
	})
	require.NoError(t, err)
	assert.False(t, c2.SyncEnabled)

	calendars, err := env.calendars.ListForUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, calendars, 2)
}

func TestAddExternalCalendarValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.calendars.Add(alice.ID, AddCalendarRequest{})

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"provider", "external_id", "name"} {
		assert.Contains(t, ve.Fields, field)
	}
}
