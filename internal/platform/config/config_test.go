package config_test

import (
	"testing"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Port)
	assert.Equal(t, "UTC", cfg.AppTimezone)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("APP_TIMEZONE", "Europe/Amsterdam")
	t.Setenv("FORCE_UTC", "true")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "Europe/Amsterdam", cfg.AppTimezone)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Europe/Amsterdam", cfg.Location.String())
	assert.True(t, cfg.ForceUTC)
}

func TestLoadConfigInvalidTimezoneFallsBack(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Not/AZone")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.AppTimezone)
	assert.Equal(t, time.UTC, cfg.Location)
}
