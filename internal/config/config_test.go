package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "assets", cfg.AssetsDir)
	assert.Equal(t, "https://www.spc.noaa.gov", cfg.SPCBaseURL)
	assert.Zero(t, cfg.SPCTimeout)
	assert.InDelta(t, 2.0, cfg.SPCRateLimit, 1e-9)
	assert.True(t, cfg.MonitorEnabled)
	assert.Equal(t, "https://www.spc.noaa.gov/products/spcacrss.xml", cfg.AdvisoryFeedURL)
	assert.Equal(t, 60*time.Second, cfg.AdvisoryPollInterval)
	assert.Equal(t, 10000, cfg.AdvisorySeenCapacity)
	assert.Equal(t, 256, cfg.AdvisoryTitleMax)
	assert.False(t, cfg.DesktopNotify)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "spc-advisories", cfg.KafkaNotifyTopic)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, "mapbox/dark-v11", cfg.MapboxStyle)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 16, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("OUTPUT_DIR", "/tmp/maps")
	t.Setenv("SPC_BASE_URL", "http://mirror.local/")
	t.Setenv("SPC_TIMEOUT", "20s")
	t.Setenv("SPC_RATE_LIMIT", "0.5")
	t.Setenv("ADVISORY_POLL_INTERVAL", "5m")
	t.Setenv("ADVISORY_SEEN_CAPACITY", "50")
	t.Setenv("ADVISORY_TITLE_MAX", "64")
	t.Setenv("DESKTOP_NOTIFY", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_NOTIFY_TOPIC", "alerts")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_STYLE", "mapbox/light-v11")
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/tmp/maps", cfg.OutputDir)
	assert.Equal(t, "http://mirror.local", cfg.SPCBaseURL)
	assert.Equal(t, 20*time.Second, cfg.SPCTimeout)
	assert.InDelta(t, 0.5, cfg.SPCRateLimit, 1e-9)
	assert.Equal(t, 5*time.Minute, cfg.AdvisoryPollInterval)
	assert.Equal(t, 50, cfg.AdvisorySeenCapacity)
	assert.Equal(t, 64, cfg.AdvisoryTitleMax)
	assert.True(t, cfg.DesktopNotify)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "alerts", cfg.KafkaNotifyTopic)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, "mapbox/light-v11", cfg.MapboxStyle)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 4, cfg.MapboxCacheSize)
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"SHUTDOWN_TIMEOUT", "ADVISORY_POLL_INTERVAL", "MAPBOX_TIMEOUT", "SPC_TIMEOUT"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "not-a-duration")
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("zero poll interval", func(t *testing.T) {
		t.Setenv("ADVISORY_POLL_INTERVAL", "0s")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("SPC_RATE_LIMIT", "-1")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestLoad_InvalidPositiveIntFallsBack(t *testing.T) {
	t.Setenv("ADVISORY_SEEN_CAPACITY", "-5")
	t.Setenv("MAPBOX_CACHE_SIZE", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.AdvisorySeenCapacity)
	assert.Equal(t, 16, cfg.MapboxCacheSize)
}

func TestLoad_MonitorDisabledAllowsEmptyFeed(t *testing.T) {
	t.Setenv("MONITOR_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MonitorEnabled)
}
