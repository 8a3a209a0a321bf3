package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/userrecords/internal/domain"
	"github.com/phrazzld/userrecords/internal/platform/logger"
	"github.com/phrazzld/userrecords/internal/redact"
	"github.com/phrazzld/userrecords/internal/store"
)

// UserRepository validates user records against a Policy and the active
// records in storage, and persists them.
//
// Checks run in a fixed order and stop at the first failure: name format,
// forbidden words, name uniqueness, then the same three for email. Errors are
// classified as:
//
//   - *domain.ValidationError (matches domain.ErrValidation) when a rule fails
//   - store.ErrUserNotFound when the target record is missing or soft-deleted
//   - *PersistenceError (matches ErrPersistence) for any storage failure
type UserRepository struct {
	users  store.UserStore
	db     *sql.DB
	policy domain.Policy
	logger *slog.Logger
	now    func() time.Time
}

// NewUserRepository creates a UserRepository.
// When db is non-nil, writes run in a transaction using users.WithTx; when nil,
// users is used directly. If logger is nil, slog.Default() is used.
func NewUserRepository(users store.UserStore, db *sql.DB, policy domain.Policy, logger *slog.Logger) *UserRepository {
	if users == nil {
		panic("users cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{
		users:  users,
		db:     db,
		policy: policy,
		logger: logger.With(slog.String("component", "user_repository")),
		now:    time.Now,
	}
}

// Policy returns the policy the repository validates against.
func (r *UserRepository) Policy() domain.Policy {
	return r.policy
}

// ValidateName returns nil if name may be used by a new record.
func (r *UserRepository) ValidateName(ctx context.Context, name string) error {
	ctx, _ = r.scope(ctx, "validate")
	return r.classify("validate", r.validateName(ctx, r.users, name, 0))
}

// ValidateEmail returns nil if email may be used by a new record.
func (r *UserRepository) ValidateEmail(ctx context.Context, email string) error {
	ctx, _ = r.scope(ctx, "validate")
	return r.classify("validate", r.validateEmail(ctx, r.users, email, 0))
}

// Create validates user and inserts it, assigning user.ID on success.
// A record that already has an ID is rejected with domain.ErrAlreadyPersisted.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, log := r.scope(ctx, "create")

	if user.IsPersisted() {
		return domain.NewValidationError("id", strconv.FormatInt(user.ID, 10), domain.ErrAlreadyPersisted)
	}

	err := r.write(ctx, func(ctx context.Context, users store.UserStore) error {
		if err := r.validateName(ctx, users, user.Name, 0); err != nil {
			return err
		}
		if err := r.validateEmail(ctx, users, user.Email, 0); err != nil {
			return err
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		// The insert may have succeeded before the commit failed.
		user.ID = 0
		return r.logFailure(log, "create", err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// Update validates user, excluding the record itself from the uniqueness
// checks, and writes its name, email and notes.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, log := r.scope(ctx, "update")

	if !user.IsPersisted() {
		return store.ErrUserNotFound
	}

	err := r.write(ctx, func(ctx context.Context, users store.UserStore) error {
		if err := r.validateName(ctx, users, user.Name, user.ID); err != nil {
			return err
		}
		if err := r.validateEmail(ctx, users, user.Email, user.ID); err != nil {
			return err
		}
		return users.Update(ctx, user)
	})
	if err != nil {
		return r.logFailure(log.With(slog.Int64("user_id", user.ID)), "update", err)
	}

	log.Info("user updated", slog.Int64("user_id", user.ID))
	return nil
}

// Delete soft-deletes the active record with the given id. Only the deleted
// timestamp is written.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, log := r.scope(ctx, "delete")
	log = log.With(slog.Int64("user_id", id))

	err := r.write(ctx, func(ctx context.Context, users store.UserStore) error {
		if _, err := users.GetByID(ctx, id); err != nil {
			return err
		}
		return users.MarkDeleted(ctx, id, r.now().UTC().Truncate(time.Microsecond))
	})
	if err != nil {
		return r.logFailure(log, "delete", err)
	}

	log.Info("user deleted")
	return nil
}

// GetByID returns the active record with the given id, or store.ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, log := r.scope(ctx, "get")

	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, r.logFailure(log.With(slog.Int64("user_id", id)), "get", err)
	}
	return user, nil
}

// ListActive returns every active record in ascending id order.
// The result is never nil.
func (r *UserRepository) ListActive(ctx context.Context) ([]*domain.User, error) {
	ctx, log := r.scope(ctx, "list")

	users, err := r.users.ListActive(ctx)
	if err != nil {
		return nil, r.logFailure(log, "list", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	log.Debug("listed active users", slog.Int("count", len(users)))
	return users, nil
}

func (r *UserRepository) validateName(ctx context.Context, users store.UserStore, name string, excludeID int64) error {
	if err := r.policy.CheckNameFormat(name); err != nil {
		return domain.NewValidationError("name", name, err)
	}
	exists, err := users.NameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewValidationError("name", name, domain.ErrNameExists)
	}
	return nil
}

func (r *UserRepository) validateEmail(ctx context.Context, users store.UserStore, email string, excludeID int64) error {
	if err := r.policy.CheckEmailFormat(email); err != nil {
		return domain.NewValidationError("email", email, err)
	}
	exists, err := users.EmailExists(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewValidationError("email", email, domain.ErrEmailExists)
	}
	return nil
}

// write runs fn in a transaction when the repository has a database handle.
func (r *UserRepository) write(ctx context.Context, fn func(ctx context.Context, users store.UserStore) error) error {
	if r.db == nil {
		return fn(ctx, r.users)
	}
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, r.users.WithTx(tx))
	})
}

// scope tags ctx with a correlation ID (reusing one the caller set) and a
// logger carrying it, so store log lines can be tied to the operation.
func (r *UserRepository) scope(ctx context.Context, op string) (context.Context, *slog.Logger) {
	id := logger.CorrelationID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = logger.WithCorrelationID(ctx, id)
	}
	log := logger.FromContextOrDefault(ctx, r.logger).With(
		slog.String("operation", op),
		slog.String("correlation_id", id),
	)
	return logger.WithLogger(ctx, log), log
}

func (r *UserRepository) classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrNotFound):
		return err
	default:
		return &PersistenceError{Op: op, Err: err}
	}
}

func (r *UserRepository) logFailure(log *slog.Logger, op string, err error) error {
	err = r.classify(op, err)

	var vErr *domain.ValidationError
	var pErr *PersistenceError
	switch {
	case errors.As(err, &vErr):
		log.Debug("user rejected",
			slog.String("field", vErr.Field),
			slog.String("reason", vErr.Err.Error()))
	case errors.Is(err, store.ErrNotFound):
		log.Debug("user not found")
	case errors.As(err, &pErr) && pErr.Retryable():
		log.Warn("unique index rejected write that passed pre-checks", slog.String("error", redact.Error(err)))
	default:
		log.Error("user operation failed", slog.String("error", redact.Error(err)))
	}
	return err
}
