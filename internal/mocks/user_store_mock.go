package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/userrecords/internal/domain"
	"github.com/phrazzld/userrecords/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *TestifyMockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListActive is a mock implementation of store.UserStore.ListActive
func (m *TestifyMockUserStore) ListActive(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *TestifyMockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MarkDeleted is a mock implementation of store.UserStore.MarkDeleted
func (m *TestifyMockUserStore) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// NameExists is a mock implementation of store.UserStore.NameExists
func (m *TestifyMockUserStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// EmailExists is a mock implementation of store.UserStore.EmailExists
func (m *TestifyMockUserStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

// WithTx is a mock implementation of store.UserStore.WithTx.
// Unless an expectation is set, it returns the mock itself.
func (m *TestifyMockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	for _, call := range m.ExpectedCalls {
		if call.Method == "WithTx" {
			args := m.Called(tx)
			if ret, ok := args.Get(0).(store.UserStore); ok {
				return ret
			}
			return m
		}
	}
	return m
}
