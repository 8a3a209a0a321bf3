package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/userrecords/internal/domain"
	"github.com/phrazzld/userrecords/internal/platform/logger"
	"github.com/phrazzld/userrecords/internal/redact"
	"github.com/phrazzld/userrecords/internal/store"
)

const userColumns = `id, name, email, created, deleted, notes`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store"), slog.String("backend", "postgres")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create.
// The generated identity is read back with RETURNING and assigned to user.ID.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users (name, email, created, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.Created,
		nullString(user.Notes),
	).Scan(&id)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("unique violation during user creation",
				slog.String("error", redact.Error(err)))
		} else {
			log.Error("failed to create user",
				slog.String("error", redact.Error(err)))
		}
		return store.NewStoreError("user", "create", "failed to insert user", mapped)
	}

	user.ID = id
	log.Debug("user row inserted", slog.Int64("user_id", id))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted IS NULL
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", id))
		return nil, store.NewStoreError("user", "get", "failed to query user", MapError(err))
	}

	return user, nil
}

// ListActive implements store.UserStore.ListActive.
func (s *PostgresUserStore) ListActive(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE deleted IS NULL
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to query users", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("user", "list", "failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to iterate users", MapError(err))
	}

	log.Debug("listed active users", slog.Int("count", len(users)))
	return users, nil
}

// Update implements store.UserStore.Update.
// Only name, email and notes are written; created and deleted are left alone.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET name = $1, email = $2, notes = $3
		WHERE id = $4 AND deleted IS NULL
	`

	result, err := s.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		nullString(user.Notes),
		user.ID,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", user.ID))
		return store.NewStoreError("user", "update", "failed to update user", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("no active user to update", slog.Int64("user_id", user.ID))
		return err
	}
	return nil
}

// MarkDeleted implements store.UserStore.MarkDeleted.
func (s *PostgresUserStore) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET deleted = $1
		WHERE id = $2 AND deleted IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, at, id)
	if err != nil {
		log.Error("failed to mark user deleted",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", id))
		return store.NewStoreError("user", "delete", "failed to mark user deleted", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// NameExists implements store.UserStore.NameExists.
func (s *PostgresUserStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return s.exists(ctx, "name", `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE name = $1 AND deleted IS NULL AND id <> $2
		)
	`, name, excludeID)
}

// EmailExists implements store.UserStore.EmailExists.
func (s *PostgresUserStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.exists(ctx, "email", `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE email = $1 AND deleted IS NULL AND id <> $2
		)
	`, email, excludeID)
}

func (s *PostgresUserStore) exists(ctx context.Context, field, query, value string, excludeID int64) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, value, excludeID).Scan(&found); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check uniqueness",
			slog.String("field", field),
			slog.String("error", redact.Error(err)))
		return false, store.NewStoreError("user", "exists", "failed to check "+field, MapError(err))
	}
	return found, nil
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user    domain.User
		deleted sql.NullTime
		notes   sql.NullString
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Created,
		&deleted,
		&notes,
	); err != nil {
		return nil, err
	}

	user.Created = user.Created.UTC()
	if deleted.Valid {
		t := deleted.Time.UTC()
		user.Deleted = &t
	}
	if notes.Valid {
		n := notes.String
		user.Notes = &n
	}
	return &user, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
