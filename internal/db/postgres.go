// internal/db/postgres.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a pgx pool capped at maxConns connections.
// Acquiring beyond the cap blocks until a connection is returned.
func ConnectPostgres(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	return pool, nil
}

// PgxExecutor runs statements on a pgx pool.
type PgxExecutor struct {
	pool *pgxpool.Pool
}

func NewPgxExecutor(pool *pgxpool.Pool) *PgxExecutor {
	return &PgxExecutor{pool: pool}
}

func (e *PgxExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := e.pool.Query(ctx, Rebind(DialectPostgres, query), args...)
	if err != nil {
		return nil, classifyPgx(err)
	}
	return pgxRows{rows}, nil
}

func (e *PgxExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return pgxRow{e.pool.QueryRow(ctx, Rebind(DialectPostgres, query), args...)}
}

func (e *PgxExecutor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := e.pool.Exec(ctx, Rebind(DialectPostgres, query), args...)
	if err != nil {
		return 0, classifyPgx(err)
	}
	return tag.RowsAffected(), nil
}

func (e *PgxExecutor) Insert(ctx context.Context, query, idColumn string, args ...any) (int64, error) {
	var id int64
	stmt := Rebind(DialectPostgres, query) + " RETURNING " + idColumn
	if err := e.pool.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, classifyPgx(err)
	}
	return id, nil
}

func (e *PgxExecutor) Dialect() Dialect { return DialectPostgres }

func (e *PgxExecutor) Ping(ctx context.Context) error {
	return classifyPgx(e.pool.Ping(ctx))
}

func (e *PgxExecutor) Close() { e.pool.Close() }

type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Scan(dest ...any) error { return classifyPgx(r.Rows.Scan(dest...)) }

func (r pgxRows) Err() error { return classifyPgx(r.Rows.Err()) }

type pgxRow struct {
	row pgx.Row
}

func (r pgxRow) Scan(dest ...any) error { return classifyPgx(r.row.Scan(dest...)) }
