package auth

import (
	"context"
	"errors"
	"testing"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubAuthAPI_LoginDefaults(t *testing.T) {
	api := NewStubAuthAPI()
	ctx := context.Background()

	res, err := api.Login(ctx, domainauth.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, DefaultToken, res.Token)
	assert.Equal(t, domainauth.RoleAdmin, res.User.Role)

	_, err = api.Login(ctx, domainauth.Credentials{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 2, api.LoginCalls())
}

func TestStubAuthAPI_CustomFuncs(t *testing.T) {
	boom := errors.New("boom")
	api := &StubAuthAPI{
		CurrentUserFunc: func(context.Context) (domainauth.Principal, error) { return domainauth.Principal{}, boom },
	}
	_, err := api.CurrentUser(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, api.CurrentUserCalls())
}

func TestMemorySlotStore(t *testing.T) {
	store := NewMemorySlotStore()
	ctx := context.Background()

	_, ok, err := store.Load(ctx, "auth_token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "auth_token", "t1"))
	require.NoError(t, store.Save(ctx, "user", "{}"))
	v, ok, err := store.Load(ctx, "auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t1", v)

	require.NoError(t, store.Delete(ctx, "auth_token", "user"))
	assert.Equal(t, 0, store.Len())

	assert.Error(t, store.Save(ctx, "", "x"))

	store.SaveErr = errors.New("disk full")
	assert.Error(t, store.Save(ctx, "auth_token", "t2"))
}

func TestRecordingNavigator(t *testing.T) {
	nav := &RecordingNavigator{}
	require.NoError(t, nav.Navigate(context.Background(), "/login"))
	require.NoError(t, nav.Navigate(context.Background(), "/"))
	assert.Equal(t, []string{"/login", "/"}, nav.Paths())
}
