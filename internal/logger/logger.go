// Package logger configures the application's structured logging.
//
// It builds the root zerolog logger from config and provides the
// adapters needed to route pgx query tracing through zerolog.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/pawmart/petstore/internal/config"
	"github.com/rs/zerolog"
)

// New constructs the root application logger.
//
// Console format writes human-friendly colored output (local dev);
// anything else emits JSON for log pipelines.
func New(cfg *config.LoggingConfig) *zerolog.Logger {
	level := parseLevel(cfg.Level)

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			Level(level).
			With().Timestamp().Logger()
	}

	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewPgxLogger returns a logger dedicated to pgx query tracing.
//
// SQL logging is noisy, so it writes console output and inherits the
// application's level rather than always logging at debug.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Str("component", "pgx").Logger()
}

// GetPgxTraceLogLevel maps the zerolog level to the pgx tracelog level
// so query logging verbosity follows the app logger.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
