package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation   = "23505"
	pgConnectionClass   = "08"
	mysqlDuplicateEntry = 1062
)

func connectionErr(err error) error {
	return fmt.Errorf("%w: %w", ErrConnection, err)
}

func duplicateErr(err error) error {
	return fmt.Errorf("%w: %w", ErrDuplicate, err)
}

// classifyPgx tags pgx errors with ErrConnection / ErrDuplicate / ErrNoRows.
func classifyPgx(err error) error {
	if err == nil || callerGaveUp(err) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return duplicateErr(err)
		}
		if strings.HasPrefix(pgErr.Code, pgConnectionClass) {
			return connectionErr(err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return connectionErr(err)
	}
	if isNetworkFailure(err) {
		return connectionErr(err)
	}
	return err
}

// classifySQL does the same for database/sql drivers (mysql, sqlite).
func classifySQL(err error) error {
	if err == nil || callerGaveUp(err) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == mysqlDuplicateEntry {
			return duplicateErr(err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return duplicateErr(err)
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(liteErr.Error(), "UNIQUE") {
				return duplicateErr(err)
			}
		case sqlite3.SQLITE_CANTOPEN:
			return connectionErr(err)
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return connectionErr(err)
	}
	if isNetworkFailure(err) {
		return connectionErr(err)
	}
	return err
}

// callerGaveUp reports a cancelled or expired context. The database may be
// fine; context.DeadlineExceeded also satisfies net.Error.
func callerGaveUp(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func isNetworkFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
