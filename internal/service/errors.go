package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pos-manage/api/internal/ledger"
)

// storeErr classifies a store error for callers: missing rows become
// ledger.ErrNotFound, connectivity failures become ledger.ErrStoreUnavailable
// with the driver error still attached.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ledger.ErrNotFound)
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, ledger.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// beginErr wraps a failure to start a transaction. The pool could not hand
// out a connection, so it is always reported as unavailable.
func beginErr(err error) error {
	return fmt.Errorf("begin tx: %w: %w", ledger.ErrStoreUnavailable, err)
}

func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception. 57P0x: admin/crash shutdown.
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// isForeignKeyViolation reports a 23503 error on the given constraint.
func isForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" && pgErr.ConstraintName == constraint
	}
	return false
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
