package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurowatch/internal/models"
	"neurowatch/internal/store"
)

func newDirectory(t *testing.T) (*Directory, *store.MemStore) {
	t.Helper()
	s := store.NewMemStore()
	return NewDirectory(s), s
}

func TestRegister(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()

	id, err := d.Register(ctx, "jdoe", "j@x.com", "p1", "Jane Doe")
	require.NoError(t, err)
	assert.NotEmpty(t, id.ID)
	assert.Equal(t, "jdoe", id.Username)
	assert.Equal(t, "Jane Doe", id.FullName)
	assert.True(t, id.EmailNotifications, "new accounts default to notifications on")
	assert.Empty(t, id.PasswordHash, "returned identity must not carry hash material")
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()

	_, err := d.Register(ctx, "jdoe", "j@x.com", "p1", "Jane Doe")
	require.NoError(t, err)

	_, err = d.Register(ctx, "jdoe", "other@x.com", "p2", "Someone Else")
	assert.ErrorIs(t, err, ErrAlreadyExists, "duplicate username")

	_, err = d.Register(ctx, "other", "j@x.com", "p2", "Someone Else")
	assert.ErrorIs(t, err, ErrAlreadyExists, "duplicate email")

	// Case differs, so both are new identities.
	_, err = d.Register(ctx, "JDOE", "J@X.COM", "p2", "Shouty Jane")
	assert.NoError(t, err)
}

func TestDirectoryInvariantAfterRegistrations(t *testing.T) {
	d, s := newDirectory(t)
	ctx := context.Background()

	_, _ = d.Register(ctx, "a", "a@x.com", "p", "A")
	_, _ = d.Register(ctx, "b", "b@x.com", "p", "B")
	_, _ = d.Register(ctx, "a", "fresh@x.com", "p", "A again") // rejected
	_, _ = d.Register(ctx, "c", "b@x.com", "p", "C")           // rejected
	_, _ = d.Register(ctx, "c", "c@x.com", "p", "C")

	var identities []models.Identity
	require.NoError(t, s.Get(ctx, "users", &identities))
	usernames := map[string]bool{}
	emails := map[string]bool{}
	for _, id := range identities {
		assert.False(t, usernames[id.Username], "username %q stored twice", id.Username)
		assert.False(t, emails[id.Email], "email %q stored twice", id.Email)
		usernames[id.Username] = true
		emails[id.Email] = true
	}
	assert.Len(t, identities, 3)
}

func TestAuthenticate(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()

	registered, err := d.Register(ctx, "jdoe", "j@x.com", "p1", "Jane Doe")
	require.NoError(t, err)

	byUsername, err := d.Authenticate(ctx, "jdoe", "p1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byUsername.ID)
	assert.Empty(t, byUsername.PasswordHash)

	byEmail, err := d.Authenticate(ctx, "j@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byEmail.ID)

	_, err = d.Authenticate(ctx, "JDOE", "p1")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "username match is case-sensitive")

	_, err = d.Authenticate(ctx, "jdoe", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = d.Authenticate(ctx, "nobody", "p1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateFirstMatchWins(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()

	// Same password, one's email equals the other's username-like handle.
	first, err := d.Register(ctx, "shared@x.com", "first@x.com", "p1", "First")
	require.NoError(t, err)
	_, err = d.Register(ctx, "second", "shared@x.com", "p1", "Second")
	require.NoError(t, err)

	got, err := d.Authenticate(ctx, "shared@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "storage order decides when both match")
}

func TestUpdateNotificationPreference(t *testing.T) {
	d, _ := newDirectory(t)
	ctx := context.Background()

	id, err := d.Register(ctx, "jdoe", "j@x.com", "p1", "Jane Doe")
	require.NoError(t, err)

	require.NoError(t, d.UpdateNotificationPreference(ctx, id.ID, false))
	got, err := d.Get(ctx, id.ID)
	require.NoError(t, err)
	assert.False(t, got.EmailNotifications)

	// Idempotent: a second identical call leaves state unchanged.
	require.NoError(t, d.UpdateNotificationPreference(ctx, id.ID, false))
	again, err := d.Get(ctx, id.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	assert.ErrorIs(t, d.UpdateNotificationPreference(ctx, "missing", true), ErrNotFound)
}
