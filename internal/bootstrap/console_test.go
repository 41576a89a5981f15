package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstore/bookstore-admin/config"
	"github.com/bookstore/bookstore-admin/internal/adapters/filestore"
	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	mockauth "github.com/bookstore/bookstore-admin/internal/mocks/auth"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/testutil"
	"github.com/bookstore/bookstore-admin/internal/testutil/fakeapi"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func consoleConfig(srv *fakeapi.Server) config.AppConfig {
	cfg := config.AppConfig{API: config.APIConfig{BaseURL: srv.APIURL()}}
	cfg.Sanitize()
	return cfg
}

func TestBuildSlotStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, closeFn, err := BuildSlotStore(context.Background(), StoreOptions{
		Storage: config.StorageConfig{Backend: config.StorageBackendFile, FilePath: path},
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	fs, ok := store.(*filestore.SlotStore)
	require.True(t, ok)
	assert.Equal(t, path, fs.Path())
}

func TestBuildSlotStore_UnsupportedBackend(t *testing.T) {
	_, closeFn, err := BuildSlotStore(context.Background(), StoreOptions{
		Storage: config.StorageConfig{Backend: "sqlite"},
	})
	require.Error(t, err)
	require.NoError(t, closeFn())
}

func TestBuildSlotStore_Redis(t *testing.T) {
	addr, ok := testutil.GetTestRedisAddr(t)
	if !ok {
		t.Skip("redis not available")
	}
	ctx := context.Background()
	store, closeFn, err := BuildSlotStore(ctx, StoreOptions{
		Storage: config.StorageConfig{Backend: config.StorageBackendRedis, KeyPrefix: "bookstore-admin:bootstrap-test:"},
		Redis:   config.RedisConfig{URI: addr, DB: 15},
		Logger:  quietLogger(),
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	require.NoError(t, store.Save(ctx, "probe", "1"))
	v, found, err := store.Load(ctx, "probe")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", v)
	require.NoError(t, store.Delete(ctx, "probe"))
}

func TestNewConsole_LoginSurvivesRestart(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{Books: []model.Book{testutil.NewBook(1).Build()}})
	defer srv.Close()
	store := mockauth.NewMemorySlotStore()
	ctx := context.Background()

	first, err := NewConsole(ctx, ConsoleOptions{Config: consoleConfig(srv), Logger: quietLogger(), Store: store})
	require.NoError(t, err)
	defer func() { require.NoError(t, first.Close()) }()

	assert.False(t, first.Gate.IsAuthenticated())
	_, err = first.Router.Go(ctx, "/books")
	require.NoError(t, err)
	assert.Equal(t, router.NameLogin, first.Router.Current().Route.Name)

	_, err = first.Gate.Login(ctx, domainauth.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	second, err := NewConsole(ctx, ConsoleOptions{Config: consoleConfig(srv), Logger: quietLogger(), Store: store})
	require.NoError(t, err)
	require.True(t, second.Gate.IsAuthenticated())

	m, err := second.Router.Go(ctx, "/books")
	require.NoError(t, err)
	assert.Equal(t, router.NameBooks, m.Route.Name)

	_, err = second.Books.Load(ctx, model.BookQuery{})
	require.NoError(t, err)
	assert.Len(t, second.Books.Books(), 1)
}

func TestNewConsole_ForcedLogoutNavigatesToLogin(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{})
	defer srv.Close()
	ctx := context.Background()

	c, err := NewConsole(ctx, ConsoleOptions{Config: consoleConfig(srv), Logger: quietLogger(), Store: mockauth.NewMemorySlotStore()})
	require.NoError(t, err)
	_, err = c.Gate.Login(ctx, domainauth.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	srv.ForceUnauthorized(true)
	_, err = c.Finance.LoadSummary(ctx, model.DateRange{})
	require.Error(t, err)

	assert.False(t, c.Gate.IsAuthenticated())
	assert.Equal(t, router.NameLogin, c.Router.Current().Route.Name)
}

func TestNewConsole_UnreachableBackendStartsSignedOut(t *testing.T) {
	store := mockauth.NewMemorySlotStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "auth_token", "persisted"))

	cfg := config.AppConfig{API: config.APIConfig{BaseURL: "http://127.0.0.1:1/api"}}
	cfg.Sanitize()
	c, err := NewConsole(ctx, ConsoleOptions{Config: cfg, Logger: quietLogger(), Store: store})
	require.NoError(t, err)

	assert.False(t, c.Gate.IsAuthenticated())
	assert.Equal(t, 1, store.Len(), "storage is kept for a later retry")
}

func TestNewConsole_ProfileUpdateRefreshesSession(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{})
	defer srv.Close()
	ctx := context.Background()

	c, err := NewConsole(ctx, ConsoleOptions{Config: consoleConfig(srv), Logger: quietLogger(), Store: mockauth.NewMemorySlotStore()})
	require.NoError(t, err)
	_, err = c.Gate.Login(ctx, domainauth.Credentials{Username: "clerk", Password: "clerkpw"})
	require.NoError(t, err)

	_, err = c.Users.UpdateProfile(ctx, model.UpdateProfileRequest{FullName: testutil.StringPtr("Counter Clerk")})
	require.NoError(t, err)
	p, ok := c.Gate.Principal()
	require.True(t, ok)
	assert.Equal(t, "Counter Clerk", p.FullName)
}
