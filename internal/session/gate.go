package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

const (
	// DefaultTokenKey is the slot holding the credential.
	DefaultTokenKey = "auth_token"
	// DefaultPrincipalKey is the slot holding the cached principal JSON.
	DefaultPrincipalKey = "user"
	// DefaultLoginPath is the login entry point.
	DefaultLoginPath = "/login"
)

// GateOptions groups dependencies for Gate.
type GateOptions struct {
	Session   *Session
	Auth      ports.AuthAPI
	Store     ports.SlotStore
	Navigator ports.Navigator
	Logger    *slog.Logger

	TokenKey     string
	PrincipalKey string
	LoginPath    string
}

// Gate drives the session lifecycle: restore, login, logout and forced logout.
type Gate struct {
	session   *Session
	auth      ports.AuthAPI
	store     ports.SlotStore
	logger    *slog.Logger
	navigator atomic.Pointer[navigatorRef]

	tokenKey     string
	principalKey string
	loginPath    string

	revalidating atomic.Pointer[string]
	initOnce     sync.Once
	initDone     chan struct{}
}

type navigatorRef struct{ ports.Navigator }

// NewGate constructs a Gate and registers its forced-logout hook on the session.
func NewGate(opts GateOptions) *Gate {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sess := opts.Session
	if sess == nil {
		sess = New()
	}

	g := &Gate{
		session:      sess,
		auth:         opts.Auth,
		store:        opts.Store,
		logger:       logger,
		tokenKey:     orDefault(opts.TokenKey, DefaultTokenKey),
		principalKey: orDefault(opts.PrincipalKey, DefaultPrincipalKey),
		loginPath:    orDefault(opts.LoginPath, DefaultLoginPath),
		initDone:     make(chan struct{}),
	}
	if opts.Navigator != nil {
		g.SetNavigator(opts.Navigator)
	}
	sess.OnExpire(g.handleExpired)
	return g
}

// SetNavigator installs the navigator used by Logout and forced logout.
func (g *Gate) SetNavigator(n ports.Navigator) {
	g.navigator.Store(&navigatorRef{n})
}

// Session returns the underlying session.
func (g *Gate) Session() *Session { return g.session }

// Initialized is closed once the first Initialize call has finished, or
// earlier when a Login or Logout has already settled the session.
func (g *Gate) Initialized() <-chan struct{} { return g.initDone }

func (g *Gate) markInitialized() {
	g.initOnce.Do(func() { close(g.initDone) })
}

// Initialize restores a persisted credential and revalidates it.
// Without a stored credential it makes no network call. A rejected credential
// clears memory and storage without navigating. Any other failure leaves the
// session unauthenticated, keeps storage for a later retry and is returned.
func (g *Gate) Initialize(ctx context.Context) error {
	defer g.markInitialized()

	token, ok, err := g.store.Load(ctx, g.tokenKey)
	if err != nil {
		g.session.reset(domainauth.StatusInvalid)
		return fmt.Errorf("load credential: %w", err)
	}
	if !ok || token == "" {
		g.session.reset(domainauth.StatusInvalid)
		g.logger.DebugContext(ctx, "no persisted credential")
		return nil
	}

	g.revalidating.Store(&token)
	defer g.revalidating.Store(nil)
	g.session.install(token, g.loadPrincipal(ctx), domainauth.StatusLoading, false)

	p, err := g.auth.CurrentUser(ctx)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			g.session.Expire(ctx, token)
			g.logger.InfoContext(ctx, "persisted credential rejected, session cleared")
			return nil
		}
		g.session.reset(domainauth.StatusInvalid)
		g.logger.WarnContext(ctx, "session revalidation failed", "error", err)
		return fmt.Errorf("revalidate session: %w", err)
	}

	if !g.session.promote(token, p) {
		return nil
	}
	g.persistPrincipal(ctx, p)
	g.logger.InfoContext(ctx, "session restored", "user_id", p.ID, "role", p.Role)
	return nil
}

// Login authenticates with the backend and installs the issued credential.
// On failure the session is left untouched.
func (g *Gate) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Principal, error) {
	if err := creds.Validate(); err != nil {
		return domainauth.Principal{}, apperrors.Request(err.Error(), err)
	}

	res, err := g.auth.Login(ctx, creds)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			err = &apperrors.AppError{
				Code:    apperrors.ErrCodeInvalidCredentials,
				Status:  http.StatusUnauthorized,
				Message: apperrors.Message(err),
				Cause:   err,
			}
		}
		g.logger.InfoContext(ctx, "login failed", "username", creds.Username, "code", apperrors.GetCode(err))
		return domainauth.Principal{}, fmt.Errorf("login: %w", err)
	}
	if res.Token == "" {
		return domainauth.Principal{}, apperrors.Wrap(errors.New("empty token"), apperrors.ErrCodeDecode, "login response carried no token")
	}

	g.session.install(res.Token, &res.User, domainauth.StatusReady, true)
	if err := g.store.Save(ctx, g.tokenKey, res.Token); err != nil {
		g.logger.WarnContext(ctx, "failed to persist credential", "error", err)
	}
	g.persistPrincipal(ctx, res.User)
	g.markInitialized()
	g.logger.InfoContext(ctx, "login succeeded", "user_id", res.User.ID, "role", res.User.Role)
	return res.User, nil
}

// Logout clears the session and storage and navigates to the login entry point.
func (g *Gate) Logout(ctx context.Context) error {
	g.session.reset(domainauth.StatusInvalid)
	storeErr := g.clearStorage(ctx)
	g.markInitialized()
	navErr := g.navigate(ctx, g.loginPath)
	g.logger.InfoContext(ctx, "logged out")
	return errors.Join(storeErr, navErr)
}

// UpdatePrincipal replaces the cached principal after a profile edit.
func (g *Gate) UpdatePrincipal(ctx context.Context, p domainauth.Principal) {
	if g.session.setPrincipal(p) {
		g.persistPrincipal(ctx, p)
	}
}

// IsAuthenticated reports whether the session holds a validated credential.
func (g *Gate) IsAuthenticated() bool { return g.session.IsAuthenticated() }

// HasRole reports whether the authenticated principal satisfies role.
func (g *Gate) HasRole(role domainauth.Role) bool { return g.session.HasRole(role) }

// Snapshot returns a copy of the session state.
func (g *Gate) Snapshot() domainauth.Snapshot { return g.session.Snapshot() }

// Principal returns the authenticated principal.
func (g *Gate) Principal() (domainauth.Principal, bool) {
	snap := g.session.Snapshot()
	if !snap.Authenticated() || snap.Principal == nil {
		return domainauth.Principal{}, false
	}
	return *snap.Principal, true
}

// handleExpired runs once per credential rejected by the server. A credential
// rejected while Initialize revalidates it is cleared without navigating.
func (g *Gate) handleExpired(ctx context.Context, token string) {
	if err := g.clearStorage(ctx); err != nil {
		g.logger.WarnContext(ctx, "failed to clear persisted session", "error", err)
	}
	if pending := g.revalidating.Load(); pending != nil && *pending == token {
		return
	}
	g.logger.InfoContext(ctx, "credential rejected, forcing logout")
	if err := g.navigate(ctx, g.loginPath); err != nil {
		g.logger.WarnContext(ctx, "navigation after forced logout failed", "error", err)
	}
}

func (g *Gate) loadPrincipal(ctx context.Context) *domainauth.Principal {
	raw, ok, err := g.store.Load(ctx, g.principalKey)
	if err != nil || !ok || raw == "" {
		return nil
	}
	var p domainauth.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		g.logger.WarnContext(ctx, "discarding corrupt persisted principal", "error", err)
		if delErr := g.store.Delete(ctx, g.principalKey); delErr != nil {
			g.logger.WarnContext(ctx, "failed to delete corrupt principal", "error", delErr)
		}
		return nil
	}
	return &p
}

func (g *Gate) persistPrincipal(ctx context.Context, p domainauth.Principal) {
	raw, err := json.Marshal(p)
	if err == nil {
		err = g.store.Save(ctx, g.principalKey, string(raw))
	}
	if err != nil {
		g.logger.WarnContext(ctx, "failed to persist principal", "error", err)
	}
}

func (g *Gate) clearStorage(ctx context.Context) error {
	if err := g.store.Delete(ctx, g.tokenKey, g.principalKey); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

func (g *Gate) navigate(ctx context.Context, path string) error {
	ref := g.navigator.Load()
	if ref == nil || ref.Navigator == nil {
		return nil
	}
	return ref.Navigate(ctx, path)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
