package domain

import (
	"context"
	"image"

	"github.com/paulmach/orb"
)

// Extent is the fixed continental map window in degrees.
var Extent = orb.Bound{
	Min: orb.Point{-125, 20},
	Max: orb.Point{-66, 60},
}

// ReferenceLayers is the static geography drawn beneath every outlook.
type ReferenceLayers struct {
	Boundaries []orb.LineString
	Highways   []orb.LineString
}

// Empty reports whether no reference geometry was loaded.
func (r ReferenceLayers) Empty() bool {
	return len(r.Boundaries) == 0 && len(r.Highways) == 0
}

// Basemap supplies a raster backdrop for the map extent.
type Basemap interface {
	// Image returns a width x height raster covering bound in an
	// equirectangular projection.
	Image(ctx context.Context, bound orb.Bound, width, height int) (image.Image, error)
}
