package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/userrecords/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// Names of the unique indexes on the users table.
const (
	usersNameConstraint  = "users_name_key"
	usersEmailConstraint = "users_email_key"
)

// MapError maps a database error to an appropriate store error, wrapping the
// original to preserve context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return mapUniqueViolation(pgErr, err)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return err
}

// mapUniqueViolation picks the entity-specific duplicate error from the name
// of the violated index.
func mapUniqueViolation(pgErr *pgconn.PgError, err error) error {
	switch pgErr.ConstraintName {
	case usersNameConstraint:
		return fmt.Errorf("%w: %v", store.ErrNameExists, err)
	case usersEmailConstraint:
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	default:
		return fmt.Errorf("%w: duplicate value for constraint %s: %v",
			store.ErrDuplicate, pgErr.ConstraintName, err)
	}
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns store.ErrNotFound, or notFound when non-nil, if
// the statement touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound != nil {
			return notFound
		}
		return store.ErrNotFound
	}

	return nil
}
