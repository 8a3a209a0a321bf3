// Package testdb provides utilities specifically for database testing.
//
// It owns the users table DDL for both backends, since schema management is
// left to deployment tooling. Two kinds of fixture are offered:
//
//   - NewSQLiteDB opens a throwaway SQLite file under t.TempDir(). It needs no
//     external services and backs the package-level end-to-end tests.
//   - GetTestDBWithT connects to PostgreSQL via DATABASE_URL (or
//     USERRECORDS_TEST_DB_URL) and skips the test when neither is set. Tests
//     using it carry the "integration" build tag.
//
// WithTx wraps a test body in a transaction that is always rolled back, so
// integration tests can share one database without cleaning up after
// themselves.
package testdb
