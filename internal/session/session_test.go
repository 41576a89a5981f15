package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
)

func TestSession_Token(t *testing.T) {
	s := New()
	_, err := s.Token()
	require.ErrorIs(t, err, ErrNoCredential)

	s.install("abc", nil, domainauth.StatusLoading, false)
	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
}

func TestSession_ProvisionalStateNeverAuthorizes(t *testing.T) {
	s := New()
	p := &domainauth.Principal{ID: 1, Username: "root", Role: domainauth.RoleSuperAdmin}
	s.install("abc", p, domainauth.StatusLoading, false)

	snap := s.Snapshot()
	require.NotNil(t, snap.Principal)
	assert.Equal(t, "root", snap.Principal.Username)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.HasRole(domainauth.RoleUser))

	assert.True(t, s.promote("abc", *p))
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.HasRole(domainauth.RoleAdmin))
}

func TestSession_PromoteIgnoresStaleToken(t *testing.T) {
	s := New()
	s.install("new", nil, domainauth.StatusReady, true)
	assert.False(t, s.promote("old", domainauth.Principal{ID: 9}))
	assert.Nil(t, s.Snapshot().Principal)
}

func TestSession_ExpireCompareAndClear(t *testing.T) {
	s := New()
	s.install("abc", &domainauth.Principal{ID: 1, Role: domainauth.RoleUser}, domainauth.StatusReady, true)

	var hooks atomic.Int32
	s.OnExpire(func(context.Context, string) { hooks.Add(1) })

	assert.False(t, s.Expire(context.Background(), "other"))
	assert.True(t, s.IsAuthenticated())

	assert.True(t, s.Expire(context.Background(), "abc"))
	assert.False(t, s.Expire(context.Background(), "abc"))
	assert.False(t, s.Expire(context.Background(), ""))
	assert.Equal(t, int32(1), hooks.Load())

	snap := s.Snapshot()
	assert.Equal(t, domainauth.StatusInvalid, snap.Status)
	assert.False(t, snap.HasToken)
	assert.Nil(t, snap.Principal)
}

func TestSession_ConcurrentExpireRunsHookOnce(t *testing.T) {
	s := New()
	s.install("abc", nil, domainauth.StatusReady, true)
	var hooks atomic.Int32
	s.OnExpire(func(context.Context, string) { hooks.Add(1) })

	var wg sync.WaitGroup
	var wins atomic.Int32
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Expire(context.Background(), "abc") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(1), hooks.Load())
}

func TestSession_HookMayReadSession(t *testing.T) {
	s := New()
	s.install("abc", nil, domainauth.StatusReady, true)
	var seen domainauth.Status
	s.OnExpire(func(context.Context, string) { seen = s.Snapshot().Status })

	require.True(t, s.Expire(context.Background(), "abc"))
	assert.Equal(t, domainauth.StatusInvalid, seen)
}

func TestSession_SetPrincipalRequiresValidatedCredential(t *testing.T) {
	s := New()
	assert.False(t, s.setPrincipal(domainauth.Principal{ID: 1}))

	s.install("abc", nil, domainauth.StatusLoading, false)
	assert.False(t, s.setPrincipal(domainauth.Principal{ID: 1}))

	s.install("abc", nil, domainauth.StatusReady, true)
	assert.True(t, s.setPrincipal(domainauth.Principal{ID: 1, FullName: "New"}))
	assert.Equal(t, "New", s.Snapshot().Principal.FullName)
}
