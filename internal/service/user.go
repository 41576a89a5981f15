package service

import (
	"context"
	"fmt"
	"log/slog"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

// principalUpdater receives the signed-in user's refreshed profile.
type principalUpdater interface {
	UpdatePrincipal(ctx context.Context, p domainauth.Principal)
}

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	API     ports.UserAPI    // Required
	Profile principalUpdater // Optional: refreshed after UpdateProfile
	Logger  *slog.Logger     // Optional
}

// UserService holds the admin account list.
type UserService struct {
	tracker
	api     ports.UserAPI
	profile principalUpdater
	users   []domainauth.Principal
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.API == nil {
		panic("UserAPI is required")
	}
	s := &UserService{api: opts.API, profile: opts.Profile}
	s.useLogger(opts.Logger)
	return s
}

// Load fetches every account.
func (s *UserService) Load(ctx context.Context) ([]domainauth.Principal, error) {
	s.begin()
	users, err := s.api.List(ctx)
	if err != nil {
		return nil, s.finish(ctx, "users.list", fmt.Errorf("list users: %w", err))
	}
	s.mu.Lock()
	s.users = append([]domainauth.Principal(nil), users...)
	s.mu.Unlock()
	return users, s.finish(ctx, "users.list", nil)
}

// Fetch loads one account.
func (s *UserService) Fetch(ctx context.Context, id int64) (domainauth.Principal, error) {
	s.begin()
	u, err := s.api.Get(ctx, id)
	if err != nil {
		err = fmt.Errorf("get user: %w", err)
	}
	return u, s.finish(ctx, "users.get", err)
}

// Create adds an account. Per-field failures are available from FieldErrors.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (domainauth.Principal, error) {
	s.begin()
	u, err := s.api.Create(ctx, req)
	if err != nil {
		return domainauth.Principal{}, s.finish(ctx, "users.create", fmt.Errorf("create user: %w", err))
	}
	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "user created", "id", u.ID, "username", u.Username, "role", string(u.Role))
	return u, s.finish(ctx, "users.create", nil)
}

// Update edits an account and replaces it in the list.
func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (domainauth.Principal, error) {
	s.begin()
	u, err := s.api.Update(ctx, id, req)
	if err != nil {
		return domainauth.Principal{}, s.finish(ctx, "users.update", fmt.Errorf("update user: %w", err))
	}
	s.mu.Lock()
	replaceByID(s.users, id, principalID, u)
	s.mu.Unlock()
	return u, s.finish(ctx, "users.update", nil)
}

// Delete removes an account from the server and the list.
func (s *UserService) Delete(ctx context.Context, id int64) (string, error) {
	s.begin()
	msg, err := s.api.Delete(ctx, id)
	if err != nil {
		return "", s.finish(ctx, "users.delete", fmt.Errorf("delete user: %w", err))
	}
	s.mu.Lock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "user deleted", "id", id)
	return msg, s.finish(ctx, "users.delete", nil)
}

// UpdateProfile edits the signed-in user's own profile and refreshes the session principal.
func (s *UserService) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (domainauth.Principal, error) {
	s.begin()
	u, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return domainauth.Principal{}, s.finish(ctx, "users.profile", fmt.Errorf("update profile: %w", err))
	}
	if s.profile != nil {
		s.profile.UpdatePrincipal(ctx, u)
	}
	s.mu.Lock()
	replaceByID(s.users, u.ID, principalID, u)
	s.mu.Unlock()
	return u, s.finish(ctx, "users.profile", nil)
}

// Users returns a copy of the loaded list.
func (s *UserService) Users() []domainauth.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domainauth.Principal(nil), s.users...)
}

func principalID(p domainauth.Principal) int64 { return p.ID }
