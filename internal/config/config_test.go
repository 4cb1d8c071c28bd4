package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggingConfig(t *testing.T) {
	local := DefaultLoggingConfig("local")
	assert.Equal(t, "debug", local.Level)
	assert.Equal(t, "console", local.Format)

	prod := DefaultLoggingConfig("production")
	assert.Equal(t, "info", prod.Level)
	assert.Equal(t, "json", prod.Format)
}

func TestLoggingConfigValidate(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		cfg := &LoggingConfig{Level: level}
		require.NoError(t, cfg.Validate(), "level %q", level)
	}

	cfg := &LoggingConfig{Level: "verbose"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Primary: Primary{Env: "production"}}).IsProduction())
	assert.False(t, (&Config{Primary: Primary{Env: "local"}}).IsProduction())
}
