package domain

import "github.com/paulmach/orb"

// Ring is an outer boundary in longitude/latitude order.
type Ring []orb.Point

// NormalizeGeometry flattens a feature geometry to the outer rings the
// renderer draws. A Polygon is treated as a one-element MultiPolygon, so both
// shapes yield identical output. Holes and empty rings are dropped. Geometry
// types that cannot carry an area yield nil.
func NormalizeGeometry(g orb.Geometry) []Ring {
	switch geom := g.(type) {
	case orb.Polygon:
		return NormalizeGeometry(orb.MultiPolygon{geom})
	case orb.MultiPolygon:
		var rings []Ring
		for _, poly := range geom {
			if len(poly) == 0 || len(poly[0]) == 0 {
				continue
			}
			rings = append(rings, Ring(poly[0]))
		}
		return rings
	case orb.Collection:
		var rings []Ring
		for _, member := range geom {
			rings = append(rings, NormalizeGeometry(member)...)
		}
		return rings
	default:
		return nil
	}
}

// Drawable reports whether the ring encloses an area, which needs at least
// three points.
func (r Ring) Drawable() bool {
	return len(r) >= 3
}

// Bound returns the ring's bounding box.
func (r Ring) Bound() orb.Bound {
	return orb.Ring(r).Bound()
}
