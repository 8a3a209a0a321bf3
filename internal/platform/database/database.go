package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/userrecords/internal/config"
	"github.com/phrazzld/userrecords/internal/platform/postgres"
	"github.com/phrazzld/userrecords/internal/platform/sqlite"
	"github.com/phrazzld/userrecords/internal/redact"
	"github.com/phrazzld/userrecords/internal/store"
)

// Supported values of config.DatabaseConfig.Driver.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = sqlite.DriverName
)

// PingTimeout bounds the connectivity check in Open.
const PingTimeout = 5 * time.Second

// ErrUnsupportedDriver is returned for a driver name other than DriverPostgres
// or DriverSQLite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Open establishes a connection for cfg.Driver, applies the pool settings and
// verifies the connection with a ping.
//
// SQLite databases always use a single connection regardless of
// cfg.MaxOpenConns.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("driver", cfg.Driver),
		slog.String("dsn", redact.DSN(cfg.URL)),
	)

	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		db, err = openPostgres(ctx, cfg)
	case DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		log.Error("failed to open database", slog.String("error", redact.Error(err)))
		return nil, err
	}

	log.Info("database connection established")
	return db, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(DriverPostgres, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewUserStore returns the store.UserStore implementation for driver, bound to db.
func NewUserStore(driver string, db *sql.DB, logger *slog.Logger) (store.UserStore, error) {
	switch driver {
	case DriverPostgres:
		return postgres.NewPostgresUserStore(db, logger), nil
	case DriverSQLite:
		return sqlite.NewUserStore(db, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}
