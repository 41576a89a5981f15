package apiclient

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.AuthAPI = (*Auth)(nil)

const loginFallback = "login failed"

// Auth wraps /auth.
type Auth struct{ c *Client }

// Login posts credentials without the current bearer token.
// A 401 maps to ErrCodeInvalidCredentials and never expires the session.
func (a *Auth) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error) {
	var res domainauth.LoginResult
	err := a.c.doJSON(ctx, call{
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      creds,
		anonymous: true,
		fallback:  loginFallback,
	}, &res)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeUnauthorized {
		rejected := *appErr
		rejected.Code = apperrors.ErrCodeInvalidCredentials
		if rejected.Message == loginFallback {
			rejected.Message = "invalid username or password"
		}
		return res, &rejected
	}
	return res, err
}

// CurrentUser returns the principal bound to the current credential.
func (a *Auth) CurrentUser(ctx context.Context) (domainauth.Principal, error) {
	raw, err := a.c.do(ctx, call{method: http.MethodGet, path: "/auth/me", fallback: "failed to load current user"})
	if err != nil {
		return domainauth.Principal{}, err
	}
	return decodeEntity[domainauth.Principal](raw, "user")
}
