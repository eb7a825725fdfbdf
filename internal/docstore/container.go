package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/app/common"
	"github.com/wanderbase/wanderbase/internal/app/observability/metrics"
)

// ErrItemNotFound is the point-access miss sentinel. Repositories decide
// whether a miss is a nil read or a NotFoundError.
var ErrItemNotFound = errors.New("docstore: item not found")

// Provider hands out collection containers. Client is the production
// implementation; repositories depend on this so tests can stub the
// store wholesale.
type Provider interface {
	Container(ctx context.Context, name string) (Container, error)
}

// Pool is the subset of pgxpool.Pool the container needs. pgxmock
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Container is a handle to one collection. Bodies are raw JSON documents;
// the store never inspects them beyond the query filters.
type Container interface {
	Name() string
	CreateItem(ctx context.Context, id, partition string, body []byte) error
	ReadItem(ctx context.Context, id, partition string) ([]byte, error)
	ReplaceItem(ctx context.Context, id, partition string, body []byte) error
	DeleteItem(ctx context.Context, id, partition string) error
	QueryItems(ctx context.Context, q Query) ([][]byte, error)
}

var _ Container = (*PGContainer)(nil)

// PGContainer maps one collection onto a JSONB table keyed by
// (id, partition_key).
type PGContainer struct {
	name   string
	table  string
	pool   Pool
	logger *zap.Logger
}

// NewPGContainer wraps an already-provisioned collection table. Client
// callers go through Client.Container, which provisions first.
func NewPGContainer(name string, pool Pool, logger *zap.Logger) *PGContainer {
	return &PGContainer{
		name:   name,
		table:  tableName(name),
		pool:   pool,
		logger: logger,
	}
}

func (c *PGContainer) Name() string { return c.name }

func (c *PGContainer) CreateItem(ctx context.Context, id, partition string, body []byte) error {
	defer c.observe(ctx, "CreateItem", time.Now())
	query := fmt.Sprintf(`INSERT INTO %s (id, partition_key, body) VALUES ($1, $2, $3)`, c.table)
	if _, err := c.pool.Exec(ctx, query, id, partition, body); err != nil {
		return c.storageError(ctx, "CreateItem", err)
	}
	return nil
}

func (c *PGContainer) ReadItem(ctx context.Context, id, partition string) ([]byte, error) {
	defer c.observe(ctx, "ReadItem", time.Now())
	query := fmt.Sprintf(`SELECT body FROM %s WHERE id = $1 AND partition_key = $2`, c.table)
	var body []byte
	err := c.pool.QueryRow(ctx, query, id, partition).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, c.storageError(ctx, "ReadItem", err)
	}
	return body, nil
}

func (c *PGContainer) ReplaceItem(ctx context.Context, id, partition string, body []byte) error {
	defer c.observe(ctx, "ReplaceItem", time.Now())
	query := fmt.Sprintf(`UPDATE %s SET body = $3 WHERE id = $1 AND partition_key = $2`, c.table)
	tag, err := c.pool.Exec(ctx, query, id, partition, body)
	if err != nil {
		return c.storageError(ctx, "ReplaceItem", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (c *PGContainer) DeleteItem(ctx context.Context, id, partition string) error {
	defer c.observe(ctx, "DeleteItem", time.Now())
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND partition_key = $2`, c.table)
	tag, err := c.pool.Exec(ctx, query, id, partition)
	if err != nil {
		return c.storageError(ctx, "DeleteItem", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (c *PGContainer) QueryItems(ctx context.Context, q Query) ([][]byte, error) {
	defer c.observe(ctx, "QueryItems", time.Now())
	query, args, err := buildSelect(c.table, q)
	if err != nil {
		return nil, c.storageError(ctx, "QueryItems", err)
	}

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, c.storageError(ctx, "QueryItems", err)
	}
	defer rows.Close()

	var bodies [][]byte
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, c.storageError(ctx, "QueryItems", err)
		}
		bodies = append(bodies, body)
	}
	if err := rows.Err(); err != nil {
		return nil, c.storageError(ctx, "QueryItems", err)
	}
	return bodies, nil
}

// observe records the operation latency once the call returns.
func (c *PGContainer) observe(ctx context.Context, op string, start time.Time) {
	metrics.RecordStoreOperation(ctx, c.name, op, time.Since(start))
}

func (c *PGContainer) storageError(ctx context.Context, op string, err error) error {
	c.logger.Error("Document store operation failed",
		zap.String("collection", c.name),
		zap.String("operation", op),
		zap.Error(err),
	)
	metrics.RecordStoreError(ctx, c.name, op)
	return &common.StorageError{Collection: c.name, Op: op, Err: err}
}
