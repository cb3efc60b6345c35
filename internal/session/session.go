// Package session tracks the client's authentication state: Anonymous
// until a successful login or registration, back to Anonymous on logout.
// The authenticated identity and API token are cached in the local state
// file so a restarted client resumes where it left off.
package session

import (
	"errors"

	"neurowatch/internal/localstate"
	"neurowatch/internal/models"
)

const (
	sessionKey = "session"
	userIDKey  = "user_id"
)

// ErrNotAuthenticated is returned by operations that need a session when
// none is present.
var ErrNotAuthenticated = errors.New("session: not authenticated")

type persisted struct {
	Identity models.Identity `json:"identity"`
	Token    string          `json:"token"`
}

// Manager holds the current session. Hydration from the local store
// happens lazily on first access, at most once per process.
type Manager struct {
	local    *localstate.Store
	hydrated bool
	current  *persisted
}

func NewManager(local *localstate.Store) *Manager {
	return &Manager{local: local}
}

func (m *Manager) hydrate() {
	if m.hydrated {
		return
	}
	m.hydrated = true
	var p persisted
	if err := m.local.Get(sessionKey, &p); err == nil && p.Identity.ID != "" {
		m.current = &p
	}
}

// Current returns the authenticated identity, or ok=false when Anonymous.
func (m *Manager) Current() (models.Identity, bool) {
	m.hydrate()
	if m.current == nil {
		return models.Identity{}, false
	}
	return m.current.Identity, true
}

// Token returns the API token for the current session.
func (m *Manager) Token() (string, error) {
	m.hydrate()
	if m.current == nil {
		return "", ErrNotAuthenticated
	}
	return m.current.Token, nil
}

// Begin transitions Anonymous -> Authenticated and persists the session.
func (m *Manager) Begin(identity models.Identity, token string) error {
	m.hydrate()
	identity = identity.Sanitized()
	m.current = &persisted{Identity: identity, Token: token}
	if err := m.local.Set(sessionKey, m.current); err != nil {
		return err
	}
	return m.local.Set(userIDKey, identity.ID)
}

// End transitions back to Anonymous and clears the persisted session.
func (m *Manager) End() error {
	m.hydrate()
	m.current = nil
	if err := m.local.Remove(sessionKey); err != nil {
		return err
	}
	return m.local.Remove(userIDKey)
}

// SetEmailNotifications updates the flag on the cached identity. The
// directory entry on the server is the source of truth; this just keeps
// the local snapshot in step after a successful update call.
func (m *Manager) SetEmailNotifications(enabled bool) error {
	m.hydrate()
	if m.current == nil {
		return ErrNotAuthenticated
	}
	m.current.Identity.EmailNotifications = enabled
	return m.local.Set(sessionKey, m.current)
}
