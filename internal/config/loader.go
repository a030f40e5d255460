package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration
const (
	DefaultLogLevel     = "info"
	DefaultLogJSON      = false
	DefaultDatabasePath = "bots.db"

	DefaultCatalogReloadSchedule  = "0 */5 * * * *" // every five minutes
	DefaultSQLMaintenanceSchedule = "0 0 4 * * *"   // daily at 04:00

	// DefaultTaskTimeout bounds a single scheduled task run.
	DefaultTaskTimeout = 2 * time.Minute
)

// Task names known to the scheduler.
const (
	TaskCatalogReload  = "catalog_reload"
	TaskSQLMaintenance = "sql_maintenance"
)

// LoadConfig loads configuration in order of precedence:
//  1. BOT_* environment variables (BOT_DATABASE_PATH, BOT_LOGGER_LEVEL, ...)
//  2. the YAML file at path, which may be missing
//  3. defaults
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfiguration, path, err)
		}
		// Config file not found is okay, we'll use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("catalog.seed_file", "")

	v.SetDefault("scheduler.tasks."+TaskCatalogReload+".schedule", DefaultCatalogReloadSchedule)
	v.SetDefault("scheduler.tasks."+TaskCatalogReload+".enabled", true)
	v.SetDefault("scheduler.tasks."+TaskSQLMaintenance+".schedule", DefaultSQLMaintenanceSchedule)
	v.SetDefault("scheduler.tasks."+TaskSQLMaintenance+".enabled", true)
}
