// Package iocdw implements the clinical-data-warehouse side of the
// pipeline using pgxpool. This is an impure I/O package; the
// contracts it implements live in pkg/extract.
package iocdw

import (
	"context"
	"fmt"

	"github.com/cdrkit/dfextract/pkg/config"
	"github.com/cdrkit/dfextract/pkg/extract"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator holds the connection pool to the warehouse and implements
// extract.CDW. The pool is read-mostly: the only statements executed
// are the staging-table clear/insert pair.
type Operator struct {
	pool *pgxpool.Pool
}

// NewOperator creates a warehouse operator (without connecting).
func NewOperator() *Operator {
	return &Operator{}
}

// Connect establishes a connection pool to the warehouse.
func (o *Operator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return NewConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// A job runs one statement at a time; a couple of warm
	// connections is plenty.
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return NewConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return NewConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	o.pool = pool
	return nil
}

// Close releases all warehouse connections.
func (o *Operator) Close() error {
	if o.pool != nil {
		o.pool.Close()
	}
	return nil
}

// Exec runs a statement and returns the number of affected rows.
func (o *Operator) Exec(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	if o.pool == nil {
		return 0, NotConnectedError()
	}

	tag, err := o.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, ExecError(sql, err)
	}
	return tag.RowsAffected(), nil
}

// Select runs a query and returns a forward-only cursor over its
// rows.
func (o *Operator) Select(
	ctx context.Context, sql string, args ...any,
) (extract.RowCursor, error) {
	if o.pool == nil {
		return nil, NotConnectedError()
	}

	rows, err := o.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, QueryError(sql, err)
	}
	return newCursor(rows), nil
}

// SelectInt runs a single-value query, a count most of the time.
func (o *Operator) SelectInt(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	if o.pool == nil {
		return 0, NotConnectedError()
	}

	var res int64
	if err := o.pool.QueryRow(ctx, sql, args...).Scan(&res); err != nil {
		return 0, QueryError(sql, err)
	}
	return res, nil
}
