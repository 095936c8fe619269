// Package assets loads the static reference geography drawn beneath outlooks.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

const (
	BoundariesFile = "boundaries.geojson"
	HighwaysFile   = "highways.geojson"
)

// LoadReferenceLayers reads the boundary and highway layers from dir. A
// missing file leaves that layer empty; unreadable or malformed files are
// reported together.
func LoadReferenceLayers(dir string, logger *slog.Logger) (domain.ReferenceLayers, error) {
	var (
		layers domain.ReferenceLayers
		result *multierror.Error
		err    error
	)

	layers.Boundaries, err = loadLines(filepath.Join(dir, BoundariesFile), logger)
	if err != nil {
		result = multierror.Append(result, err)
	}
	layers.Highways, err = loadLines(filepath.Join(dir, HighwaysFile), logger)
	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return domain.ReferenceLayers{}, err
	}
	logger.Info("reference layers loaded",
		"dir", dir,
		"boundaries", len(layers.Boundaries),
		"highways", len(layers.Highways),
	)
	return layers, nil
}

func loadLines(path string, logger *slog.Logger) ([]orb.LineString, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("reference layer missing, skipping", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var lines []orb.LineString
	for _, f := range fc.Features {
		lines = append(lines, linesOf(f.Geometry)...)
	}
	return lines, nil
}

// linesOf flattens any geometry to strokeable paths. Polygon rings are drawn
// as closed outlines.
func linesOf(g orb.Geometry) []orb.LineString {
	switch geom := g.(type) {
	case orb.LineString:
		return []orb.LineString{geom}
	case orb.MultiLineString:
		return append([]orb.LineString(nil), geom...)
	case orb.Ring:
		return []orb.LineString{orb.LineString(geom)}
	case orb.Polygon:
		out := make([]orb.LineString, 0, len(geom))
		for _, r := range geom {
			out = append(out, orb.LineString(r))
		}
		return out
	case orb.MultiPolygon:
		var out []orb.LineString
		for _, p := range geom {
			out = append(out, linesOf(p)...)
		}
		return out
	case orb.Collection:
		var out []orb.LineString
		for _, member := range geom {
			out = append(out, linesOf(member)...)
		}
		return out
	default:
		return nil
	}
}
