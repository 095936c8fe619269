package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	OutputDir string
	AssetsDir string

	// SPC retrieval. A zero SPCTimeout keeps the transport default.
	SPCBaseURL   string
	SPCTimeout   time.Duration
	SPCRateLimit float64

	// Advisory feed monitor.
	MonitorEnabled       bool
	AdvisoryFeedURL      string
	AdvisoryPollInterval time.Duration
	AdvisorySeenCapacity int
	AdvisoryTitleMax     int
	DesktopNotify        bool

	// Kafka advisory fan-out. Disabled when no brokers are configured.
	KafkaBrokers     []string
	KafkaNotifyTopic string

	// Mapbox basemap configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxStyle     string
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	spcTimeout, err := parseDuration("SPC_TIMEOUT", "0s", true)
	if err != nil {
		return nil, err
	}
	pollInterval, err := parseDuration("ADVISORY_POLL_INTERVAL", "60s", false)
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s", false)
	if err != nil {
		return nil, err
	}

	rateLimit, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("SPC_RATE_LIMIT", "2"), 64)
	if err != nil || rateLimit < 0 {
		return nil, errors.New("invalid SPC_RATE_LIMIT")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OutputDir: sharedcfg.EnvOrDefault("OUTPUT_DIR", "output"),
		AssetsDir: sharedcfg.EnvOrDefault("ASSETS_DIR", "assets"),

		SPCBaseURL:   strings.TrimRight(sharedcfg.EnvOrDefault("SPC_BASE_URL", "https://www.spc.noaa.gov"), "/"),
		SPCTimeout:   spcTimeout,
		SPCRateLimit: rateLimit,

		MonitorEnabled:       sharedcfg.EnvOrDefault("MONITOR_ENABLED", "true") == "true",
		AdvisoryFeedURL:      sharedcfg.EnvOrDefault("ADVISORY_FEED_URL", "https://www.spc.noaa.gov/products/spcacrss.xml"),
		AdvisoryPollInterval: pollInterval,
		AdvisorySeenCapacity: parsePositiveInt("ADVISORY_SEEN_CAPACITY", 10000),
		AdvisoryTitleMax:     parsePositiveInt("ADVISORY_TITLE_MAX", 256),
		DesktopNotify:        os.Getenv("DESKTOP_NOTIFY") == "true",

		KafkaBrokers:     brokers,
		KafkaNotifyTopic: sharedcfg.EnvOrDefault("KAFKA_NOTIFY_TOPIC", "spc-advisories"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxStyle:     sharedcfg.EnvOrDefault("MAPBOX_STYLE", "mapbox/dark-v11"),
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parsePositiveInt("MAPBOX_CACHE_SIZE", 16),
	}

	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if cfg.MonitorEnabled && cfg.AdvisoryFeedURL == "" {
		return nil, errors.New("ADVISORY_FEED_URL is required when the monitor is enabled")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaNotifyTopic == "" {
		return nil, errors.New("KAFKA_NOTIFY_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// KafkaEnabled reports whether advisory notifications are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseDuration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
