// Package service contains the application-level logic for user records.
//
// UserRepository is the only entry point. It applies a domain.Policy and the
// uniqueness rules to every write, delegates storage to a store.UserStore,
// and scopes each write in a transaction when given a *sql.DB.
//
// Error handling:
//   - Rule failures are *domain.ValidationError and match domain.ErrValidation.
//   - Missing or soft-deleted targets are store.ErrUserNotFound.
//   - Everything else is a *PersistenceError matching ErrPersistence. Its
//     Retryable method reports a write that lost a uniqueness race. The
//     repository never retries on its own.
//
// The service layer depends on domain entities and the store interfaces, never
// on a specific backend.
package service
