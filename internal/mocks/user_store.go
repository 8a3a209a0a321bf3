package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/userrecords/internal/domain"
	"github.com/phrazzld/userrecords/internal/store"
)

// MockUserStore is an in-memory store.UserStore for testing.
// Any Fn field that is set replaces the default behavior of its method.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, user *domain.User) error
	GetByIDFn     func(ctx context.Context, id int64) (*domain.User, error)
	UpdateFn      func(ctx context.Context, user *domain.User) error
	MarkDeletedFn func(ctx context.Context, id int64, at time.Time) error

	// Data for default implementation
	Users       map[int64]*domain.User
	LastUserID  int64
	CreateError error

	mu sync.Mutex
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[int64]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	if m.activeWith(func(u *domain.User) bool { return u.Name == user.Name }, 0) {
		return store.ErrNameExists
	}
	if m.activeWith(func(u *domain.User) bool { return u.Email == user.Email }, 0) {
		return store.ErrEmailExists
	}

	m.LastUserID++
	user.ID = m.LastUserID
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.Users[id]
	if !ok || user.IsDeleted() {
		return nil, store.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// ListActive implements the UserStore interface
func (m *MockUserStore) ListActive(ctx context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		if !user.IsDeleted() {
			u := *user
			users = append(users, &u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Users[user.ID]
	if !ok || existing.IsDeleted() {
		return store.ErrUserNotFound
	}
	if m.activeWith(func(u *domain.User) bool { return u.Name == user.Name }, user.ID) {
		return store.ErrNameExists
	}
	if m.activeWith(func(u *domain.User) bool { return u.Email == user.Email }, user.ID) {
		return store.ErrEmailExists
	}

	existing.Name = user.Name
	existing.Email = user.Email
	existing.Notes = user.Notes
	return nil
}

// MarkDeleted implements the UserStore interface
func (m *MockUserStore) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	if m.MarkDeletedFn != nil {
		return m.MarkDeletedFn(ctx, id, at)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.Users[id]
	if !ok || user.IsDeleted() {
		return store.ErrUserNotFound
	}
	deleted := at
	user.Deleted = &deleted
	return nil
}

// NameExists implements the UserStore interface
func (m *MockUserStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeWith(func(u *domain.User) bool { return u.Name == name }, excludeID), nil
}

// EmailExists implements the UserStore interface
func (m *MockUserStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeWith(func(u *domain.User) bool { return u.Email == email }, excludeID), nil
}

// WithTx implements the UserStore interface for transaction support
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	// For mock purposes, just return the same mock
	return m
}

// activeWith reports whether an active user other than excludeID matches.
// Callers must hold m.mu.
func (m *MockUserStore) activeWith(match func(*domain.User) bool, excludeID int64) bool {
	for id, user := range m.Users {
		if id != excludeID && !user.IsDeleted() && match(user) {
			return true
		}
	}
	return false
}
