package apiclient

import (
	"context"
	"net/http"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.UserAPI = (*Users)(nil)

// Users wraps /users. The collection path keeps its trailing slash.
type Users struct{ c *Client }

// List returns every account.
func (u *Users) List(ctx context.Context) ([]domainauth.Principal, error) {
	raw, err := u.c.do(ctx, call{method: http.MethodGet, path: "/users/", fallback: "failed to load users"})
	if err != nil {
		return nil, err
	}
	page, err := decodePage[domainauth.Principal](raw, "users")
	return page.Items, err
}

// Get fetches one account.
func (u *Users) Get(ctx context.Context, id int64) (domainauth.Principal, error) {
	var p domainauth.Principal
	err := u.c.doJSON(ctx, call{method: http.MethodGet, path: idPath("/users", id), fallback: "failed to load user"}, &p)
	return p, err
}

// Create adds an admin account. Server-side field errors arrive in AppError.Fields.
func (u *Users) Create(ctx context.Context, req model.CreateUserRequest) (domainauth.Principal, error) {
	if err := req.Validate(); err != nil {
		return domainauth.Principal{}, validation(err)
	}
	var p domainauth.Principal
	err := u.c.doJSON(ctx, call{method: http.MethodPost, path: "/users/", body: req, fallback: "failed to create user"}, &p)
	return p, err
}

// Update edits another account.
func (u *Users) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (domainauth.Principal, error) {
	if err := req.Validate(); err != nil {
		return domainauth.Principal{}, validation(err)
	}
	var p domainauth.Principal
	err := u.c.doJSON(ctx, call{method: http.MethodPut, path: idPath("/users", id), body: req, fallback: "failed to update user"}, &p)
	return p, err
}

// Delete removes an account and returns the server message.
func (u *Users) Delete(ctx context.Context, id int64) (string, error) {
	var res model.MessageResponse
	err := u.c.doJSON(ctx, call{method: http.MethodDelete, path: idPath("/users", id), fallback: "failed to delete user"}, &res)
	return res.Message, err
}

// UpdateProfile edits the signed-in user's own profile.
func (u *Users) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (domainauth.Principal, error) {
	if err := req.Validate(); err != nil {
		return domainauth.Principal{}, validation(err)
	}
	var p domainauth.Principal
	err := u.c.doJSON(ctx, call{method: http.MethodPut, path: "/users/me", body: req, fallback: "failed to update profile"}, &p)
	return p, err
}
