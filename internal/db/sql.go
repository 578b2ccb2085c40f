// internal/db/sql.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLExecutor runs statements through database/sql. It backs the mysql and
// sqlite drivers; both already speak '?' placeholders.
type SQLExecutor struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens a database/sql pool for driver "mysql" or "sqlite".
func OpenSQL(driver, dsn string, maxConns int) (*SQLExecutor, error) {
	var dialect Dialect
	switch driver {
	case "mysql":
		dialect = DialectMySQL
	case "sqlite":
		dialect = DialectSQLite
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	if maxConns > 0 {
		conn.SetMaxOpenConns(maxConns)
	}
	conn.SetConnMaxIdleTime(5 * time.Minute)

	return &SQLExecutor{db: conn, dialect: dialect}, nil
}

// NewSQLExecutor wraps an already opened pool.
func NewSQLExecutor(conn *sql.DB, dialect Dialect) *SQLExecutor {
	return &SQLExecutor{db: conn, dialect: dialect}
}

func (e *SQLExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifySQL(err)
	}
	return sqlRows{rows}, nil
}

func (e *SQLExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return sqlRow{e.db.QueryRowContext(ctx, query, args...)}
}

func (e *SQLExecutor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classifySQL(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classifySQL(err)
	}
	return n, nil
}

func (e *SQLExecutor) Insert(ctx context.Context, query, idColumn string, args ...any) (int64, error) {
	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classifySQL(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", idColumn, classifySQL(err))
	}
	return id, nil
}

func (e *SQLExecutor) Dialect() Dialect { return e.dialect }

func (e *SQLExecutor) Ping(ctx context.Context) error {
	return classifySQL(e.db.PingContext(ctx))
}

func (e *SQLExecutor) Close() { _ = e.db.Close() }

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool             { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error { return classifySQL(r.rows.Scan(dest...)) }
func (r sqlRows) Err() error             { return classifySQL(r.rows.Err()) }
func (r sqlRows) Close()                 { _ = r.rows.Close() }

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error { return classifySQL(r.row.Scan(dest...)) }
