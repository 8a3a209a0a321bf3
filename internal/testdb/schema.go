package testdb

// PostgresSchema creates the users table and its partial unique indexes.
// Statements are idempotent so repeated test runs can share a database.
var PostgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id      BIGSERIAL PRIMARY KEY,
		name    TEXT NOT NULL,
		email   TEXT NOT NULL,
		created TIMESTAMPTZ NOT NULL,
		deleted TIMESTAMPTZ NULL,
		notes   TEXT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_name_key ON users (name) WHERE deleted IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email) WHERE deleted IS NULL`,
}

// SQLiteSchema is the SQLite rendition of PostgresSchema.
var SQLiteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		name    TEXT NOT NULL,
		email   TEXT NOT NULL,
		created DATETIME NOT NULL,
		deleted DATETIME NULL,
		notes   TEXT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_name_key ON users (name) WHERE deleted IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email) WHERE deleted IS NULL`,
}
