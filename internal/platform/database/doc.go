// Package database opens the configured SQL backend and builds the matching
// store.UserStore. Callers own the returned *sql.DB and must close it.
package database
