// Package main starts the user records module against the configured database
// and reports the number of active records. It is the deployment smoke check
// for configuration, logging and connectivity.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/userrecords/internal/app"
	"github.com/phrazzld/userrecords/internal/config"
	"github.com/phrazzld/userrecords/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("userrecords: %v", err)
	}
}

// run loads configuration, sets up logging and the application, and lists the
// active user records.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	a, err := app.New(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			l.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()

	users, err := a.Users.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	l.Info("user records ready", slog.Int("active_users", len(users)))
	return nil
}
