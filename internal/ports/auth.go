package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/apiclient; orchestration in internal/session.

import (
	"context"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
)

// AuthAPI talks to the backend's /auth endpoints.
type AuthAPI interface {
	// Login exchanges credentials for a token and the principal. It never sends the current credential.
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error)

	// CurrentUser returns the principal bound to the current credential.
	CurrentUser(ctx context.Context) (domainauth.Principal, error)
}

// SlotStore persists string values under fixed keys across process restarts.
type SlotStore interface {
	// Load returns the value and true, or false when the slot is empty.
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Navigator moves the application to a route path.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}
