// Package postgres provides the PostgreSQL implementation of store.UserStore.
// It runs through database/sql with the pgx stdlib driver and maps SQLSTATE
// codes reported by pgconn onto the store error taxonomy.
package postgres
