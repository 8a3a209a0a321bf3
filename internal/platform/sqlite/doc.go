// Package sqlite provides the SQLite implementation of store.UserStore,
// built on the pure-Go modernc.org/sqlite driver.
//
// It is used for embedded deployments and for end-to-end tests that must not
// depend on a running PostgreSQL server. The schema mirrors the PostgreSQL one,
// including partial unique indexes on name and email over active rows.
package sqlite
