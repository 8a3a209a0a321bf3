package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/userrecords/internal/store"
)

// ErrPersistence is matched by every PersistenceError.
// Callers check for validation failures with domain.ErrValidation and for
// missing records with store.ErrNotFound; anything else the repository
// returns matches ErrPersistence.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError reports a storage failure during a repository operation.
type PersistenceError struct {
	Op  string // repository operation: "create", "update", "delete", "get", "list", "validate"
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s during %s: %v", ErrPersistence, e.Op, e.Err)
}

// Unwrap returns the underlying store or driver error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes every PersistenceError match ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Retryable reports whether the operation lost a race that a fresh attempt may
// win: a unique index rejected a write that passed the pre-checks.
func (e *PersistenceError) Retryable() bool {
	return errors.Is(e.Err, store.ErrDuplicate)
}
