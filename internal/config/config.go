// Package config loads and validates the bot catalog service configuration
// from a YAML file, BOT_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration marks every error returned by LoadConfig.
var ErrConfiguration = errors.New("configuration error")

// Config holds the application settings.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig selects the log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DatabaseConfig locates the SQLite catalog database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// CatalogConfig controls how the bot catalog is populated.
type CatalogConfig struct {
	// SeedFile is an optional YAML file of bot definitions written to the
	// database at startup.
	SeedFile string `mapstructure:"seed_file" validate:"omitempty,file"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig schedules one task. Schedule is a cron expression with a
// leading seconds field.
type TaskConfig struct {
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
	Enabled  bool   `mapstructure:"enabled"`
}

// Validate checks the struct tags of c.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
