package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wanderbase/wanderbase/internal/app/common"
	database "github.com/wanderbase/wanderbase/internal/db"
	"github.com/wanderbase/wanderbase/internal/pkg/config"
)

// Client hands out collection containers. It connects lazily on first use
// so credentials can be configured after construction, provisions each
// collection exactly once per process, and caches the handles for the
// process lifetime. Callers hold a reference instead of relying on
// package-global state.
type Client struct {
	cfg    config.PostgresConfig
	logger *zap.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool

	group      singleflight.Group
	containers sync.Map // collection name -> Container
}

func NewClient(cfg config.PostgresConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// Container returns the handle for the named collection, connecting and
// provisioning on first use. Safe to call concurrently and repeatedly;
// provisioning is create-if-not-exists.
func (c *Client) Container(ctx context.Context, name string) (Container, error) {
	if cached, ok := c.containers.Load(name); ok {
		return cached.(Container), nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		if cached, ok := c.containers.Load(name); ok {
			return cached.(Container), nil
		}

		pool, err := c.ensureConnected(ctx)
		if err != nil {
			return nil, err
		}

		if err := c.provision(ctx, pool, name); err != nil {
			return nil, err
		}

		container := NewPGContainer(name, pool, c.logger)
		c.containers.Store(name, container)
		c.logger.Info("Collection ready",
			zap.String("collection", name),
			zap.String("partition_key", "/"+PartitionKey(name)),
		)
		return container, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Container), nil
}

// ensureConnected builds the pool once. Missing credentials are a
// ConfigurationError; anything failing during construction or migration
// is a ConnectionError. Both are logged here and returned, never
// swallowed.
func (c *Client) ensureConnected(ctx context.Context) (*pgxpool.Pool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil {
		return c.pool, nil
	}

	if c.cfg.Host == "" {
		err := &common.ConfigurationError{Missing: "POSTGRES_HOST"}
		c.logger.Error("Document store misconfigured", zap.Error(err))
		return nil, err
	}
	if c.cfg.Password == "" {
		err := &common.ConfigurationError{Missing: "POSTGRES_PASSWORD"}
		c.logger.Error("Document store misconfigured", zap.Error(err))
		return nil, err
	}

	connURL := database.ConnectionURL(c.cfg)

	pool, err := database.Init(connURL, c.logger)
	if err != nil {
		connErr := &common.ConnectionError{Err: err}
		c.logger.Error("Failed to construct document store client", zap.Error(err))
		return nil, connErr
	}

	if !database.WaitForDB(ctx, pool, c.logger) {
		pool.Close()
		connErr := &common.ConnectionError{Err: fmt.Errorf("database unreachable at %s:%s", c.cfg.Host, c.cfg.Port)}
		c.logger.Error("Document store unreachable", zap.Error(connErr))
		return nil, connErr
	}

	if err := database.RunMigrations(connURL, c.logger); err != nil {
		pool.Close()
		connErr := &common.ConnectionError{Err: err}
		c.logger.Error("Failed to provision document store schema", zap.Error(err))
		return nil, connErr
	}

	c.pool = pool
	return pool, nil
}

// provision creates the collection table when the base migration did not
// already cover it. Idempotent by construction.
func (c *Client) provision(ctx context.Context, pool *pgxpool.Pool, name string) error {
	table := tableName(name)
	// Ids are opaque strings to the store; some collections use slugs.
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id text NOT NULL,
    partition_key text NOT NULL,
    body jsonb NOT NULL,
    created_at timestamptz NOT NULL DEFAULT now(),
    PRIMARY KEY (id, partition_key)
)`, table)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		connErr := &common.ConnectionError{Err: fmt.Errorf("provisioning collection %s: %w", name, err)}
		c.logger.Error("Failed to provision collection",
			zap.String("collection", name),
			zap.Error(err),
		)
		return connErr
	}
	return nil
}

// Pool exposes the underlying pool for health checks. Nil until the first
// container is requested.
func (c *Client) Pool() *pgxpool.Pool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
}
