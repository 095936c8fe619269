package render

import "github.com/paulmach/orb"

// projection maps longitude/latitude onto canvas pixels with a plain
// equirectangular transform over a fixed bound.
type projection struct {
	bound         orb.Bound
	width, height float64
}

func newProjection(bound orb.Bound, width, height int) projection {
	return projection{bound: bound, width: float64(width), height: float64(height)}
}

func (p projection) point(pt orb.Point) (x, y float64) {
	x = (pt.Lon() - p.bound.Min.Lon()) / (p.bound.Max.Lon() - p.bound.Min.Lon()) * p.width
	y = (p.bound.Max.Lat() - pt.Lat()) / (p.bound.Max.Lat() - p.bound.Min.Lat()) * p.height
	return x, y
}
