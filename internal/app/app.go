// Package app wires configuration into the render path shared by the daemon
// and the CLI.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/couchcryptid/storm-outlook-service/internal/adapter/assets"
	"github.com/couchcryptid/storm-outlook-service/internal/adapter/mapbox"
	"github.com/couchcryptid/storm-outlook-service/internal/adapter/spc"
	"github.com/couchcryptid/storm-outlook-service/internal/config"
	"github.com/couchcryptid/storm-outlook-service/internal/observability"
	"github.com/couchcryptid/storm-outlook-service/internal/pipeline"
	"github.com/couchcryptid/storm-outlook-service/internal/render"
)

// NewRenderService builds the fetch, classify, composite pipeline. It returns
// the SPC client too so callers can reuse it for the advisory feed.
func NewRenderService(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*pipeline.Service, *spc.Client, error) {
	layers, err := assets.LoadReferenceLayers(cfg.AssetsDir, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load reference layers: %w", err)
	}

	opts := []render.Option{render.WithOverlayDir(OverlayDir(cfg))}

	// Basemap is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxStyle, cfg.MapboxTimeout, logger)
		cached, err := mapbox.NewCachedBasemap(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, render.WithBasemap(cached))
		logger.Info("mapbox basemap enabled", "style", cfg.MapboxStyle, "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox basemap disabled")
	}

	fetcher := spc.NewClient(cfg.SPCTimeout, cfg.SPCRateLimit, logger)
	compositor := render.New(cfg.OutputDir, logger, opts...)
	return pipeline.New(fetcher, compositor, layers, cfg.SPCBaseURL, logger, metrics), fetcher, nil
}

// OverlayDir is where category header graphics are read from.
func OverlayDir(cfg *config.Config) string {
	return filepath.Join(cfg.AssetsDir, "overlays")
}
