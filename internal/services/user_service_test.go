package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duetcal/duetcal-api/internal/domain/common"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.users.Register(RegisterRequest{
		Username: "alice",
		Password: "correct-horse-battery",
		Email:    "alice@example.com",
		FullName: "Alice Example",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", u.Password, "the password is stored hashed")

	got, err := env.users.Authenticate("alice", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = env.users.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Authenticate("nobody", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown users get the same error as bad passwords")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Register(RegisterRequest{
		Username: " ",
		Password: "short",
		Email:    "not-an-email",
		FullName: "",
	})

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"username", "password", "email", "full_name"} {
		assert.Contains(t, ve.Fields, field)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice")

	_, err := env.users.Register(RegisterRequest{
		Username: "alice",
		Password: "correct-horse-battery",
		Email:    "other@example.com",
		FullName: "Other Alice",
	})
	assert.True(t, common.IsConflict(err), "duplicate username conflicts")

	_, err = env.users.Register(RegisterRequest{
		Username: "alice2",
		Password: "correct-horse-battery",
		Email:    "alice@example.com",
		FullName: "Other Alice",
	})
	assert.True(t, common.IsConflict(err), "duplicate email conflicts")
}
