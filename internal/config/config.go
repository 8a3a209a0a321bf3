package config

import (
	"time"

	"github.com/phrazzld/userrecords/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Policy   PolicyConfig   `mapstructure:"policy" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json text"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the backend: "pgx" for PostgreSQL, "sqlite" for SQLite.
	Driver string `mapstructure:"driver" validate:"required,oneof=pgx sqlite"`
	// URL is a PostgreSQL connection URL or a SQLite DSN/file path.
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// PolicyConfig contains the content rules applied to user records.
type PolicyConfig struct {
	MinNameLength               int      `mapstructure:"min_name_length" validate:"gte=1"`
	ForbiddenNameSubstrings     []string `mapstructure:"forbidden_name_substrings" validate:"dive,required"`
	BannedEmailDomainSubstrings []string `mapstructure:"banned_email_domain_substrings" validate:"dive,required"`
}

// Policy converts the configured rules into an immutable domain.Policy.
func (c PolicyConfig) Policy() domain.Policy {
	return domain.NewPolicy(c.MinNameLength, c.ForbiddenNameSubstrings, c.BannedEmailDomainSubstrings)
}
