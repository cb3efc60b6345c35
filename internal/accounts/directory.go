// Package accounts owns the set of registered identities. The directory is
// persisted as a single JSON array under /users in the record store and
// rewritten whole on every mutation, the same shape the original kept in
// its registered-users blob.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"neurowatch/internal/models"
	"neurowatch/internal/store"
)

const usersPath = "users"

var (
	ErrAlreadyExists      = errors.New("accounts: username or email already registered")
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	ErrNotFound           = errors.New("accounts: identity not found")
)

// Directory provides registration and credential checks over the record store.
type Directory struct {
	store store.RecordStore
}

func NewDirectory(s store.RecordStore) *Directory {
	return &Directory{store: s}
}

func (d *Directory) load(ctx context.Context) ([]models.Identity, error) {
	var identities []models.Identity
	err := d.store.Get(ctx, usersPath, &identities)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return identities, nil
}

// Register appends a new identity. Uniqueness is on username OR email,
// case-sensitive. New accounts start with email notifications on. The
// returned identity has the hash stripped.
func (d *Directory) Register(ctx context.Context, username, email, password, fullName string) (models.Identity, error) {
	identities, err := d.load(ctx)
	if err != nil {
		return models.Identity{}, err
	}
	for _, id := range identities {
		if id.Username == username || id.Email == email {
			return models.Identity{}, ErrAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	identity := models.Identity{
		ID:                 uuid.NewString(),
		Username:           username,
		Email:              email,
		PasswordHash:       string(hash),
		FullName:           fullName,
		EmailNotifications: true,
		CreatedAt:          time.Now().UTC(),
	}
	identities = append(identities, identity)
	if err := d.store.Put(ctx, usersPath, identities); err != nil {
		return models.Identity{}, err
	}
	return identity.Sanitized(), nil
}

// Authenticate scans the directory in storage order and returns the first
// identity whose username or email equals the input (case-sensitive) and
// whose password verifies. First match wins.
func (d *Directory) Authenticate(ctx context.Context, usernameOrEmail, password string) (models.Identity, error) {
	identities, err := d.load(ctx)
	if err != nil {
		return models.Identity{}, err
	}
	for _, id := range identities {
		if id.Username != usernameOrEmail && id.Email != usernameOrEmail {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(password)) == nil {
			return id.Sanitized(), nil
		}
	}
	return models.Identity{}, ErrInvalidCredentials
}

// Get returns the identity with the given id, hash stripped.
func (d *Directory) Get(ctx context.Context, identityID string) (models.Identity, error) {
	identities, err := d.load(ctx)
	if err != nil {
		return models.Identity{}, err
	}
	for _, id := range identities {
		if id.ID == identityID {
			return id.Sanitized(), nil
		}
	}
	return models.Identity{}, ErrNotFound
}

// UpdateNotificationPreference rewrites the matching directory entry.
// Idempotent: setting the same value twice is a no-op the second time.
// The directory is the single source of truth for the flag; sessions hold
// a reference, not a copy.
func (d *Directory) UpdateNotificationPreference(ctx context.Context, identityID string, enabled bool) error {
	identities, err := d.load(ctx)
	if err != nil {
		return err
	}
	for i := range identities {
		if identities[i].ID != identityID {
			continue
		}
		if identities[i].EmailNotifications == enabled {
			return nil
		}
		identities[i].EmailNotifications = enabled
		return d.store.Put(ctx, usersPath, identities)
	}
	return ErrNotFound
}
