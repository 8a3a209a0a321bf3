package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/userrecords/internal/config"
	"github.com/phrazzld/userrecords/internal/platform/database"
	"github.com/phrazzld/userrecords/internal/service"
	"github.com/phrazzld/userrecords/internal/store"
)

// App holds the shared dependencies to simplify management and ensure proper
// cleanup on shutdown.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB

	UserStore store.UserStore
	Users     *service.UserRepository
}

// New wires the application from cfg: database connection, user store and
// repository. logger must be non-nil; see logger.Setup.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	userStore, err := database.NewUserStore(cfg.Database.Driver, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create user store: %w", err)
	}

	policy := cfg.Policy.Policy()
	app := &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		UserStore: userStore,
		Users:     service.NewUserRepository(userStore, db, policy, logger),
	}

	logger.Info("application initialized",
		slog.String("driver", cfg.Database.Driver),
		slog.Int("min_name_length", policy.MinNameLength()),
		slog.Int("forbidden_name_substrings", len(policy.ForbiddenNameSubstrings())),
		slog.Int("banned_email_domain_substrings", len(policy.BannedEmailDomainSubstrings())))

	return app, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	a.Logger.Info("database connection closed")
	return nil
}
