// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), loads them into structured Go types, and
// validates that required values are present so the app fails fast on
// bad or missing config.
//
// Env vars use the PETSTORE_ prefix and dot-delimited nesting:
//
//	PETSTORE_SERVER.PORT -> server.port -> Config.Server.Port
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if
	// one exists, before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from; the
// `validate:"required"` tags enforce presence at startup.
//
// Logging is a pointer because it is optional; defaults are injected
// when it is missing.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis" validate:"required"`
	Auth     AuthConfig     `koanf:"auth" validate:"required"`
	Logging  *LoggingConfig `koanf:"logging"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig holds the API-key gate configuration.
//
// KeyHeader is the request header carrying the key; Keys is the
// allow-list of accepted values. The allow-list is injected here rather
// than hard-coded so deployments can rotate keys without a rebuild.
type AuthConfig struct {
	KeyHeader string   `koanf:"key_header" validate:"required"`
	Keys      []string `koanf:"keys" validate:"required,min=1"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format ("json" or "console").
	Format string `koanf:"format"`
}

// DefaultLoggingConfig returns logging defaults keyed off the runtime env:
// pretty console output with debug level locally, JSON at info elsewhere.
func DefaultLoggingConfig(environment string) *LoggingConfig {
	if environment == "local" {
		return &LoggingConfig{Level: "debug", Format: "console"}
	}
	return &LoggingConfig{Level: "info", Format: "json"}
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies logging defaults.
//
// It logs fatally (and exits) on any failure: without valid config
// there is nothing sensible the process can do.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// Only env vars with the PETSTORE_ prefix are read; the prefix is
	// stripped and the remainder lowercased to form the koanf key path.
	err := k.Load(env.Provider("PETSTORE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PETSTORE_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Logging == nil {
		mainConfig.Logging = DefaultLoggingConfig(mainConfig.Primary.Env)
	}
	if err := mainConfig.Logging.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid logging config")
	}

	return mainConfig, nil
}

// Validate applies rules that go beyond struct tags.
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.Level != "" && !validLevels[c.Level] {
		return &invalidLevelError{level: c.Level}
	}
	return nil
}

type invalidLevelError struct {
	level string
}

func (e *invalidLevelError) Error() string {
	return "invalid logging level: " + e.level + " (must be one of: debug, info, warn, error)"
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
