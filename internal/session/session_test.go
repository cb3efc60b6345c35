package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurowatch/internal/localstate"
	"neurowatch/internal/models"
)

func identity() models.Identity {
	return models.Identity{ID: "u1", Username: "jdoe", Email: "j@x.com", FullName: "Jane Doe", EmailNotifications: true}
}

func TestBeginCurrentEnd(t *testing.T) {
	m := NewManager(localstate.New(filepath.Join(t.TempDir(), "state.json")))

	_, ok := m.Current()
	assert.False(t, ok, "fresh process starts Anonymous")

	require.NoError(t, m.Begin(identity(), "tok"))
	got, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "jdoe", got.Username)

	token, err := m.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, m.End())
	_, ok = m.Current()
	assert.False(t, ok, "logout clears the session")
	_, err = m.Token()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestBeginStripsHashMaterial(t *testing.T) {
	m := NewManager(localstate.New(filepath.Join(t.TempDir(), "state.json")))
	id := identity()
	id.PasswordHash = "should-never-persist"
	require.NoError(t, m.Begin(id, "tok"))
	got, _ := m.Current()
	assert.Empty(t, got.PasswordHash)
}

func TestHydrationAcrossProcesses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, NewManager(localstate.New(path)).Begin(identity(), "tok"))

	// A new Manager simulates a restarted client process.
	m := NewManager(localstate.New(path))
	got, ok := m.Current()
	require.True(t, ok, "session hydrates from the local store")
	assert.Equal(t, "u1", got.ID)

	require.NoError(t, m.End())
	_, ok = NewManager(localstate.New(path)).Current()
	assert.False(t, ok, "ended sessions do not come back after restart")
}

func TestSetEmailNotifications(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m := NewManager(localstate.New(path))

	assert.ErrorIs(t, m.SetEmailNotifications(false), ErrNotAuthenticated)

	require.NoError(t, m.Begin(identity(), "tok"))
	require.NoError(t, m.SetEmailNotifications(false))
	got, _ := m.Current()
	assert.False(t, got.EmailNotifications)

	// The flag change does not end the session, and it persists.
	got, ok := NewManager(localstate.New(path)).Current()
	require.True(t, ok)
	assert.False(t, got.EmailNotifications)
}
