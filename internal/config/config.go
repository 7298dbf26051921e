package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	API    APIConfig    `mapstructure:"api"`
	Tasks  TasksConfig  `mapstructure:"tasks"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gte=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// StoreConfig identifies the task store. It is resolved once at process
// start; the handle built from it is shared by every request.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite memory"`
	// URL is a PostgreSQL connection URL for the postgres driver, or a
	// database file path (or ":memory:") for the sqlite driver.
	URL             string        `mapstructure:"url"               validate:"required_unless=Driver memory"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// APIConfig contains HTTP boundary settings.
type APIConfig struct {
	// LegacyStatusCodes collapses every error response to 400 Bad Request.
	LegacyStatusCodes bool `mapstructure:"legacy_status_codes"`
}

// TasksConfig contains task operation settings.
type TasksConfig struct {
	// StrictUpdate makes updates of unknown task IDs fail with not found
	// instead of creating the task.
	StrictUpdate bool `mapstructure:"strict_update"`
}
