package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// EnvironmentTest is the ENVIRONMENT value that suppresses automatic schema creation.
const EnvironmentTest = "test"

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Environment        string        `mapstructure:"environment" validate:"required"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins" validate:"required,min=1,dive,required"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
}

// IsTest reports whether the service runs in test mode.
func (c ServerConfig) IsTest() bool {
	return c.Environment == EnvironmentTest
}

// DatabaseConfig contains the connection string and pool bounds.
// The pool keeps up to PoolSize idle connections and opens at most
// PoolSize+MaxOverflow in total. Checkout blocks for at most PoolTimeout and
// connections older than ConnMaxLifetime are closed and replaced.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	PoolSize        int           `mapstructure:"pool_size" validate:"gt=0"`
	MaxOverflow     int           `mapstructure:"max_overflow" validate:"gte=0"`
	PoolTimeout     time.Duration `mapstructure:"pool_timeout" validate:"gt=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
}

// MaxOpenConns is the hard upper bound on open connections.
func (c DatabaseConfig) MaxOpenConns() int {
	return c.PoolSize + c.MaxOverflow
}
