package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/userrecords/internal/store"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MapError maps a SQLite error to an appropriate store error, wrapping the
// original to preserve context.
//
// SQLite reports every constraint failure under the SQLITE_CONSTRAINT primary
// code; the kind of constraint and the offending column are only available in
// the message ("UNIQUE constraint failed: users.email").
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	if !isConstraintError(err) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return mapUniqueViolation(msg, err)
	case strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}

// IsUniqueViolation checks if the given error is a SQLite unique constraint violation.
func IsUniqueViolation(err error) bool {
	return isConstraintError(err) && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isConstraintError(err error) bool {
	var sErr *msqlite.Error
	if errors.As(err, &sErr) {
		return sErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

func mapUniqueViolation(msg string, err error) error {
	switch {
	case strings.Contains(msg, "users.name"):
		return fmt.Errorf("%w: %v", store.ErrNameExists, err)
	case strings.Contains(msg, "users.email"):
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	default:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
}
