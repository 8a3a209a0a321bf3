package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/userrecords/internal/domain"
	"github.com/phrazzld/userrecords/internal/platform/logger"
	"github.com/phrazzld/userrecords/internal/redact"
	"github.com/phrazzld/userrecords/internal/store"
)

const userColumns = `id, name, email, created, deleted, notes`

// UserStore implements store.UserStore on top of SQLite.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a SQLite-backed store.UserStore. The caller owns db.
// If logger is nil, slog.Default() is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store"), slog.String("backend", "sqlite")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create inserts user and assigns the generated id from LastInsertId.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, email, created, notes) VALUES (?, ?, ?, ?)`,
		user.Name, user.Email, user.Created.UTC(), nullString(user.Notes),
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("unique violation during user creation", slog.String("error", redact.Error(err)))
		} else {
			log.Error("failed to create user", slog.String("error", redact.Error(err)))
		}
		return store.NewStoreError("user", "create", "failed to insert user", mapped)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.NewStoreError("user", "create", "failed to read generated id", err)
	}

	user.ID = id
	log.Debug("user row inserted", slog.Int64("user_id", id))
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND deleted IS NULL`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user by ID",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", id))
		return nil, store.NewStoreError("user", "get", "failed to query user", MapError(err))
	}
	return user, nil
}

func (s *UserStore) ListActive(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted IS NULL ORDER BY id`)
	if err != nil {
		return nil, store.NewStoreError("user", "list", "failed to query users", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, store.NewStoreError("user", "list", "failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "failed to iterate users", MapError(err))
	}
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, notes = ? WHERE id = ? AND deleted IS NULL`,
		user.Name, user.Email, nullString(user.Notes), user.ID,
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", user.ID))
		return store.NewStoreError("user", "update", "failed to update user", MapError(err))
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}

func (s *UserStore) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET deleted = ? WHERE id = ? AND deleted IS NULL`,
		at.UTC(), id,
	)
	if err != nil {
		return store.NewStoreError("user", "delete", "failed to mark user deleted", MapError(err))
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}

func (s *UserStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return s.exists(ctx, "name",
		`SELECT EXISTS (SELECT 1 FROM users WHERE name = ? AND deleted IS NULL AND id <> ?)`,
		name, excludeID)
}

func (s *UserStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.exists(ctx, "email",
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = ? AND deleted IS NULL AND id <> ?)`,
		email, excludeID)
}

func (s *UserStore) exists(ctx context.Context, field, query, value string, excludeID int64) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, value, excludeID).Scan(&found); err != nil {
		return false, store.NewStoreError("user", "exists", "failed to check "+field, MapError(err))
	}
	return found, nil
}

// WithTx returns a UserStore bound to tx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, logger: s.logger}
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
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Created, &deleted, &notes); err != nil {
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

func checkRowsAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
