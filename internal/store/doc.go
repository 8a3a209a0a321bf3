// Package store defines the persistence contract for user records and the
// error taxonomy shared by every storage backend. Backends live under
// internal/platform; business rules live in internal/service.
package store
