// internal/db/executor.go
package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	xerrors "carmarket-service/internal/pkg/errors"
)

// Dialect identifies the SQL flavour an Executor speaks.
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectMySQL
	DialectSQLite
)

func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "postgres"
	case DialectMySQL:
		return "mysql"
	case DialectSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

var (
	// ErrConnection marks failures to reach the database at all. Callers use it
	// to decide whether to fail over instead of reporting a generic error.
	ErrConnection = errors.New("database unreachable")
	// ErrDuplicate marks unique constraint violations.
	ErrDuplicate = errors.New("duplicate key")
	// ErrNoRows is returned by Row.Scan when the query matched nothing.
	ErrNoRows = errors.New("no rows in result set")
)

// Rows is the subset of a driver cursor the repositories need.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Row is a single-row result.
type Row interface {
	Scan(dest ...any) error
}

// Executor issues parameterized statements against a connection pool.
// Templates use '?' placeholders; implementations rebind them for their
// dialect and never interpolate argument values into the statement text.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	// Exec runs a write and returns the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	// Insert runs an INSERT and returns the generated value of idColumn.
	Insert(ctx context.Context, query, idColumn string, args ...any) (int64, error)
	Dialect() Dialect
	Ping(ctx context.Context) error
	Close()
}

// Rebind rewrites '?' placeholders into the dialect's native form.
// Question marks inside single-quoted literals are left alone.
func Rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// IsConnection reports whether err is a connectivity failure.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// AsUnavailable tags connectivity failures with xerrors.ErrUnavailable and
// returns every other error unchanged.
func AsUnavailable(err error) error {
	if IsConnection(err) {
		return fmt.Errorf("%w: %w", xerrors.ErrUnavailable, err)
	}
	return err
}
