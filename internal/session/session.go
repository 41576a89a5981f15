// Package session owns the client credential and principal and gates access on them.
package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
)

// ErrNoCredential is returned by Token when no credential is installed.
var ErrNoCredential = errors.New("session: no credential")

// tokenType is the scheme used when attaching the credential to requests.
const tokenType = "Bearer"

// ExpireHook runs after a credential has been cleared by Expire.
type ExpireHook func(ctx context.Context, token string)

// Session holds the credential, principal and lifecycle status of one client.
// It implements oauth2.TokenSource so HTTP clients can attach the credential.
type Session struct {
	mu        sync.RWMutex
	token     string
	principal *domainauth.Principal
	status    domainauth.Status
	validated bool
	onExpire  ExpireHook
}

var _ oauth2.TokenSource = (*Session)(nil)

// New returns an empty, uninitialized Session.
func New() *Session {
	return &Session{status: domainauth.StatusUninitialized}
}

// Token returns the current credential as a bearer token.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil, ErrNoCredential
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: tokenType}, nil
}

// OnExpire registers the hook invoked once per credential cleared by Expire.
func (s *Session) OnExpire(hook ExpireHook) {
	s.mu.Lock()
	s.onExpire = hook
	s.mu.Unlock()
}

// Expire clears the session if token is still the installed credential.
// Only the first caller for a given credential gets true and triggers the hook.
func (s *Session) Expire(ctx context.Context, token string) bool {
	s.mu.Lock()
	if token == "" || s.token != token {
		s.mu.Unlock()
		return false
	}
	s.resetLocked(domainauth.StatusInvalid)
	hook := s.onExpire
	s.mu.Unlock()

	if hook != nil {
		hook(ctx, token)
	}
	return true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() domainauth.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := domainauth.Snapshot{
		Status:    s.status,
		HasToken:  s.token != "",
		Validated: s.validated,
	}
	if s.principal != nil {
		p := *s.principal
		snap.Principal = &p
	}
	return snap
}

// IsAuthenticated reports whether the session holds a credential validated in this process.
func (s *Session) IsAuthenticated() bool {
	return s.Snapshot().Authenticated()
}

// HasRole reports whether the authenticated principal holds role or a higher one.
func (s *Session) HasRole(role domainauth.Role) bool {
	snap := s.Snapshot()
	if !snap.Authenticated() || snap.Principal == nil {
		return false
	}
	return snap.Principal.Role.Satisfies(role)
}

// install replaces the whole state.
func (s *Session) install(token string, p *domainauth.Principal, status domainauth.Status, validated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.principal = clonePrincipal(p)
	s.status = status
	s.validated = validated
}

// promote marks token as validated with p, unless the credential changed meanwhile.
func (s *Session) promote(token string, p domainauth.Principal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		return false
	}
	s.principal = &p
	s.status = domainauth.StatusReady
	s.validated = true
	return true
}

// setPrincipal replaces the principal of an authenticated session.
func (s *Session) setPrincipal(p domainauth.Principal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || !s.validated {
		return false
	}
	s.principal = &p
	return true
}

// reset clears the credential and principal.
func (s *Session) reset(status domainauth.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(status)
}

func (s *Session) resetLocked(status domainauth.Status) {
	s.token = ""
	s.principal = nil
	s.status = status
	s.validated = false
}

func clonePrincipal(p *domainauth.Principal) *domainauth.Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
