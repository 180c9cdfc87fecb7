package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-menu-cache/cache"
	"github.com/goliatone/go-menu-cache/config"
	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/goliatone/go-menu-cache/internal/cacheinfra"
	"github.com/goliatone/go-menu-cache/internal/httpapi"
	"github.com/goliatone/go-menu-cache/internal/storage"
	"github.com/goliatone/go-menu-cache/repositorycache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Container owns the service graph: the database handle, the cache gateway,
// the cached repository and the HTTP handler built on top of them.
type Container struct {
	config     config.Config
	logger     *zap.Logger
	registry   *prometheus.Registry
	db         *bun.DB
	store      *hierarchy.BunStore
	gateway    cache.Gateway
	repository *repositorycache.CachedRepository
	handler    http.Handler
}

// NewContainer opens the database, creates the schema when AutoMigrate is set,
// builds the cache gateway and wires the router. logger may be nil.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("di: invalid config: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.AutoMigrate {
		if err := hierarchy.CreateSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	gateway, err := cacheinfra.NewGateway(cfg.Cache, cacheinfra.NewMetrics(registry))
	if err != nil {
		db.Close()
		return nil, err
	}

	store := hierarchy.NewBunStore(db)
	repo := repositorycache.New(store, gateway, repositorycache.WithLogger(logger.Named("cache")))

	c := &Container{
		config:     cfg,
		logger:     logger,
		registry:   registry,
		db:         db,
		store:      store,
		gateway:    gateway,
		repository: repo,
	}

	c.handler = httpapi.NewRouter(repo, httpapi.Options{
		Logger:   logger.Named("http"),
		Metrics:  httpapi.NewMetrics(registry),
		Gatherer: registry,
		Health:   c.Health,
	})

	logger.Info("container ready",
		zap.String("db_driver", cfg.Storage.Driver),
		zap.String("cache_backend", string(cfg.Cache.Backend)),
	)

	return c, nil
}

// NewContainerWithDefaults creates a container from config.Default.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, config.Default(), nil)
}

// Repository returns the cached hierarchy store.
func (c *Container) Repository() hierarchy.Store { return c.repository }

// Store returns the uncached store.
func (c *Container) Store() hierarchy.Store { return c.store }

// Gateway returns the cache gateway.
func (c *Container) Gateway() cache.Gateway { return c.gateway }

// Handler returns the HTTP handler.
func (c *Container) Handler() http.Handler { return c.handler }

// Registry returns the Prometheus registry the components register with.
func (c *Container) Registry() *prometheus.Registry { return c.registry }

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config { return c.config }

// Health pings the database.
func (c *Container) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close releases the database handle.
func (c *Container) Close() error {
	return c.db.Close()
}
