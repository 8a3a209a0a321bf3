package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/userrecords/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// Implementations only translate between domain.User and rows of the users
// table. They do not apply content rules; that is the repository's job.
// "Active" means the row's deleted column is NULL.
type UserStore interface {
	// Create inserts a new row (name, email, created, notes) and assigns the
	// generated identity to user.ID.
	// Returns ErrNameExists or ErrEmailExists on a unique violation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves an active user by ID.
	// Returns ErrUserNotFound if there is no such row or it is soft-deleted.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// ListActive returns every active user ordered by ID.
	// The result is fully materialized; it is empty, never nil, when there are none.
	ListActive(ctx context.Context) ([]*domain.User, error)

	// Update writes name, email and notes to the active row with user.ID.
	// Returns ErrUserNotFound if no active row matches.
	// Returns ErrNameExists or ErrEmailExists on a unique violation.
	Update(ctx context.Context, user *domain.User) error

	// MarkDeleted sets the deleted timestamp of the active row with the given ID.
	// No other column is written.
	// Returns ErrUserNotFound if no active row matches.
	MarkDeleted(ctx context.Context, id int64, at time.Time) error

	// NameExists reports whether an active row other than excludeID uses name.
	// Pass 0 to exclude nothing.
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	// EmailExists reports whether an active row other than excludeID uses email.
	// Pass 0 to exclude nothing.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
