package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTransient marks failures caused by lock contention or statement
// timeouts. Callers may safely retry the whole operation.
var ErrTransient = errors.New("transient database failure, retry the operation")

// pgErrorCode extracts the postgres error code when err wraps a PgError.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// pgConstraint reports whether err is a postgres error of the given code
// raised on the given constraint.
func pgConstraint(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code && pgErr.ConstraintName == constraint
	}

	return false
}

// translateTransient maps retryable postgres failures onto ErrTransient and
// leaves everything else untouched.
func translateTransient(err error) error {
	switch pgErrorCode(err) {
	case pgerrcode.LockNotAvailable, pgerrcode.QueryCanceled, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return ErrTransient
	}

	return err
}
