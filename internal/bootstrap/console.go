package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bookstore/bookstore-admin/config"
	"github.com/bookstore/bookstore-admin/internal/adapters/filestore"
	redisadapter "github.com/bookstore/bookstore-admin/internal/adapters/redis"
	"github.com/bookstore/bookstore-admin/internal/apiclient"
	"github.com/bookstore/bookstore-admin/internal/ports"
	"github.com/bookstore/bookstore-admin/internal/router"
	"github.com/bookstore/bookstore-admin/internal/service"
	"github.com/bookstore/bookstore-admin/internal/session"
)

// StoreOptions contains configuration for the durable slot store.
type StoreOptions struct {
	Storage config.StorageConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger
}

// BuildSlotStore creates the slot store selected by the storage backend.
// The returned close function releases the Redis connection, if any.
//
//nolint:ireturn // callers depend on the port, not the backend.
func BuildSlotStore(ctx context.Context, opts StoreOptions) (ports.SlotStore, func() error, error) {
	noop := func() error { return nil }
	switch opts.Storage.Backend {
	case config.StorageBackendRedis:
		client, err := ConnectRedis(ctx, RedisOptions{Config: opts.Redis, Logger: opts.Logger})
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		store, err := redisadapter.NewSlotStore(redisadapter.SlotStoreOptions{
			Client: client,
			Prefix: opts.Storage.KeyPrefix,
			TTL:    opts.Storage.TTL,
		})
		if err != nil {
			return nil, noop, errors.Join(err, client.Close())
		}
		return store, client.Close, nil
	case config.StorageBackendFile, "":
		store, err := filestore.NewSlotStore(opts.Storage.FilePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open session file: %w", err)
		}
		return store, noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage backend %q", opts.Storage.Backend)
	}
}

// ConsoleOptions groups inputs for NewConsole.
type ConsoleOptions struct {
	Config config.AppConfig
	Logger *slog.Logger
	// Store overrides the configured slot store when set.
	Store ports.SlotStore
	// HTTPClient overrides the default HTTP client when set.
	HTTPClient *http.Client
}

// Console is the wired dashboard: session, API client, gate, router and state containers.
type Console struct {
	Logger  *slog.Logger
	Session *session.Session
	Client  *apiclient.Client
	Gate    *session.Gate
	Router  *router.Router

	Books       *service.BookService
	Sales       *service.SalesService
	Procurement *service.ProcurementService
	Finance     *service.FinanceService
	Users       *service.UserService

	closeStore func() error
}

// NewConsole wires the console and runs the gate's first initialization.
// An initialization failure that kept storage (network, server) is logged and
// not returned; the session then stays unauthenticated.
func NewConsole(ctx context.Context, opts ConsoleOptions) (*Console, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	closeStore := func() error { return nil }
	store := opts.Store
	if store == nil {
		var err error
		store, closeStore, err = BuildSlotStore(ctx, StoreOptions{
			Storage: opts.Config.Storage,
			Redis:   opts.Config.Redis,
			Logger:  logger,
		})
		if err != nil {
			return nil, err
		}
	}

	sess := session.New()
	client, err := apiclient.New(apiclient.Options{
		BaseURL:     opts.Config.API.BaseURL,
		HTTPClient:  opts.HTTPClient,
		Credentials: sess,
		Logger:      logger,
		UserAgent:   opts.Config.API.UserAgent,
		Timeout:     opts.Config.API.Timeout,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("build api client: %w", err), closeStore())
	}

	gate := session.NewGate(session.GateOptions{
		Session:      sess,
		Auth:         client.Auth,
		Store:        store,
		Logger:       logger,
		TokenKey:     opts.Config.Storage.TokenKey,
		PrincipalKey: opts.Config.Storage.PrincipalKey,
		LoginPath:    router.LoginPath,
	})
	rt := router.New(router.Options{Gate: gate, Logger: logger})
	gate.SetNavigator(rt)

	c := &Console{
		Logger:      logger,
		Session:     sess,
		Client:      client,
		Gate:        gate,
		Router:      rt,
		Books:       service.NewBookService(service.BookServiceOptions{API: client.Books, Logger: logger}),
		Sales:       service.NewSalesService(service.SalesServiceOptions{API: client.Sales, Logger: logger}),
		Procurement: service.NewProcurementService(service.ProcurementServiceOptions{API: client.Procurement, Logger: logger}),
		Finance:     service.NewFinanceService(service.FinanceServiceOptions{API: client.Finance, Logger: logger}),
		Users: service.NewUserService(service.UserServiceOptions{
			API:     client.Users,
			Profile: gate,
			Logger:  logger,
		}),
		closeStore: closeStore,
	}

	if initErr := gate.Initialize(ctx); initErr != nil {
		logger.WarnContext(ctx, "session revalidation failed; continuing signed out", "error", initErr)
	}
	return c, nil
}

// Close releases the slot store connection.
func (c *Console) Close() error {
	if c.closeStore == nil {
		return nil
	}
	return c.closeStore()
}
