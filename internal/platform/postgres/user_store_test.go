package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/userrecords/internal/domain"
	"github.com/phrazzld/userrecords/internal/platform/postgres"
	"github.com/phrazzld/userrecords/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "name", "email", "created", "deleted", "notes"}

func newMockStore(t *testing.T) (*postgres.PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewPostgresUserStore(db, nil), mock
}

func TestNewPostgresUserStore(t *testing.T) {
	t.Run("nil db panics", func(t *testing.T) {
		assert.Panics(t, func() { postgres.NewPostgresUserStore(nil, nil) })
	})

	t.Run("accepts sql.DB", func(t *testing.T) {
		assert.NotNil(t, postgres.NewPostgresUserStore(&sql.DB{}, nil))
	})
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns returned id", func(t *testing.T) {
		s, mock := newMockStore(t)
		user := domain.NewUser("johnDoe123", "john@example.com")
		user.SetNotes("first")

		mock.ExpectQuery(`INSERT INTO users \(name, email, created, notes\)`).
			WithArgs("johnDoe123", "john@example.com", user.Created, "first").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		require.NoError(t, s.Create(ctx, user))
		assert.Equal(t, int64(42), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil notes are written as NULL", func(t *testing.T) {
		s, mock := newMockStore(t)
		user := domain.NewUser("johnDoe123", "john@example.com")

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("johnDoe123", "john@example.com", sqlmock.AnyArg(), nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		require.NoError(t, s.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation on email", func(t *testing.T) {
		s, mock := newMockStore(t)
		user := domain.NewUser("johnDoe123", "john@example.com")

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(newPgError("23505", "users_email_key"))

		err := s.Create(ctx, user)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.Zero(t, user.ID, "ID must stay unset when the insert fails")

		var storeErr *store.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "create", storeErr.Operation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation on name", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(newPgError("23505", "users_name_key"))

		err := s.Create(ctx, domain.NewUser("johnDoe123", "john@example.com"))
		assert.ErrorIs(t, err, store.ErrNameExists)
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`FROM users\s+WHERE id = \$1 AND deleted IS NULL`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(7), "johnDoe123", "john@example.com", created, nil, "note"))

		user, err := s.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "johnDoe123", user.Name)
		assert.Equal(t, "john@example.com", user.Email)
		assert.True(t, created.Equal(user.Created))
		assert.Nil(t, user.Deleted)
		require.NotNil(t, user.Notes)
		assert.Equal(t, "note", *user.Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null notes", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`FROM users`).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(7), "johnDoe123", "john@example.com", created, nil, nil))

		user, err := s.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, user.Notes)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`FROM users`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := s.GetByID(ctx, 99)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`FROM users`).WillReturnError(errors.New("connection reset"))

		_, err := s.GetByID(ctx, 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_ListActive(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns rows in order", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`WHERE deleted IS NULL\s+ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(1), "johnDoe123", "john@example.com", created, nil, nil).
				AddRow(int64(2), "janeDoe456", "jane@example.com", created, nil, "vip"))

		users, err := s.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(1), users[0].ID)
		assert.Equal(t, "janeDoe456", users[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is empty slice", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`FROM users`).WillReturnRows(sqlmock.NewRows(userRowColumns))

		users, err := s.ListActive(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("row error closes cursor", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`FROM users`).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(1), "johnDoe123", "john@example.com", created, nil, nil).
				RowError(0, errors.New("network glitch")).
				CloseError(nil))

		users, err := s.ListActive(ctx)
		assert.Nil(t, users)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates name email and notes", func(t *testing.T) {
		s, mock := newMockStore(t)
		user := &domain.User{ID: 3, Name: "johnDoe999", Email: "john@example.org"}

		mock.ExpectExec(`UPDATE users\s+SET name = \$1, email = \$2, notes = \$3\s+WHERE id = \$4 AND deleted IS NULL`).
			WithArgs("johnDoe999", "john@example.org", nil, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active row", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(ctx, &domain.User{ID: 3, Name: "johnDoe999", Email: "john@example.org"})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("unique violation", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE users`).WillReturnError(newPgError("23505", "users_name_key"))

		err := s.Update(ctx, &domain.User{ID: 3, Name: "johnDoe999", Email: "john@example.org"})
		assert.ErrorIs(t, err, store.ErrNameExists)
	})
}

func TestPostgresUserStore_MarkDeleted(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	t.Run("writes only deleted", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE users\s+SET deleted = \$1\s+WHERE id = \$2 AND deleted IS NULL`).
			WithArgs(at, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.MarkDeleted(ctx, 5, at))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.MarkDeleted(ctx, 5, at), store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("name exists excluding self", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`WHERE name = \$1 AND deleted IS NULL AND id <> \$2`).
			WithArgs("johnDoe123", int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		found, err := s.NameExists(ctx, "johnDoe123", 4)
		require.NoError(t, err)
		assert.True(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email free", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`WHERE email = \$1 AND deleted IS NULL AND id <> \$2`).
			WithArgs("john@example.com", int64(0)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		found, err := s.EmailExists(ctx, "john@example.com", 0)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("query failure", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(errors.New("timeout"))

		_, err := s.EmailExists(ctx, "john@example.com", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check email")
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	base := postgres.NewPostgresUserStore(db, nil)
	tx, err := db.Begin()
	require.NoError(t, err)

	txStore := base.WithTx(tx)
	require.NoError(t, txStore.MarkDeleted(context.Background(), 1, time.Now().UTC()))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
