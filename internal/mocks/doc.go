// Package mocks provides centralized mock implementations for testing.
//
// Two doubles of store.UserStore are available:
//
//   - MockUserStore keeps users in memory and honors the same active-row
//     uniqueness rules as the SQL stores. Its Fn fields override individual
//     methods when a test needs to inject a failure.
//   - TestifyMockUserStore is a testify/mock double for tests that assert on
//     the exact calls made.
//
// Usage:
//
//	users := mocks.NewMockUserStore()
//	users.CreateFn = func(ctx context.Context, u *domain.User) error {
//	    return store.ErrEmailExists
//	}
//	repo := service.NewUserRepository(users, nil, domain.DefaultPolicy(), nil)
package mocks
