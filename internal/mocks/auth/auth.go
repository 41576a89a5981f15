package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI   = (*StubAuthAPI)(nil)
	_ ports.SlotStore = (*MemorySlotStore)(nil)
	_ ports.Navigator = (*RecordingNavigator)(nil)
)

// DefaultToken is the token StubAuthAPI issues when none is configured.
const DefaultToken = "stub-token"

// StubAuthAPI simulates the backend auth endpoints with deterministic answers.
type StubAuthAPI struct {
	LoginFunc       func(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error)
	CurrentUserFunc func(ctx context.Context) (domainauth.Principal, error)

	// Deterministic values for predictable testing
	Token       string
	Password    string
	DefaultUser domainauth.Principal

	loginCalls atomic.Int32
	meCalls    atomic.Int32
}

// NewStubAuthAPI creates a StubAuthAPI accepting "admin"/"secret" by default.
func NewStubAuthAPI() *StubAuthAPI {
	return &StubAuthAPI{
		Token:    DefaultToken,
		Password: "secret",
		DefaultUser: domainauth.Principal{
			ID:       1,
			Username: "admin",
			FullName: "Stub Admin",
			Role:     domainauth.RoleAdmin,
		},
	}
}

// ErrInvalidCredentials is returned by the default Login for a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

func (m *StubAuthAPI) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error) {
	m.loginCalls.Add(1)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	if creds.Username != m.DefaultUser.Username || creds.Password != m.Password {
		return domainauth.LoginResult{}, ErrInvalidCredentials
	}
	return domainauth.LoginResult{Token: m.Token, User: m.DefaultUser}, nil
}

func (m *StubAuthAPI) CurrentUser(ctx context.Context) (domainauth.Principal, error) {
	m.meCalls.Add(1)
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return m.DefaultUser, nil
}

// LoginCalls reports how many times Login was invoked.
func (m *StubAuthAPI) LoginCalls() int { return int(m.loginCalls.Load()) }

// CurrentUserCalls reports how many times CurrentUser was invoked.
func (m *StubAuthAPI) CurrentUserCalls() int { return int(m.meCalls.Load()) }

// MemorySlotStore is an in-memory slot store for unit tests.
type MemorySlotStore struct {
	mu    sync.Mutex
	slots map[string]string

	// SaveErr and DeleteErr, when set, are returned instead of writing.
	SaveErr   error
	DeleteErr error
}

// NewMemorySlotStore creates a new in-memory slot store.
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{
		slots: make(map[string]string),
	}
}

func (m *MemorySlotStore) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *MemorySlotStore) Save(_ context.Context, key, value string) error {
	if key == "" {
		return errors.New("slot key cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.slots[key] = value
	return nil
}

func (m *MemorySlotStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for _, k := range keys {
		delete(m.slots, k)
	}
	return nil
}

// Get returns a slot value directly, for assertions.
func (m *MemorySlotStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	return v, ok
}

// Len reports the number of populated slots.
func (m *MemorySlotStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// RecordingNavigator records every navigation request.
type RecordingNavigator struct {
	mu    sync.Mutex
	paths []string

	// Err, when set, is returned from Navigate after recording.
	Err error
}

func (n *RecordingNavigator) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
	return n.Err
}

// Paths returns a copy of the recorded paths.
func (n *RecordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}
