package render

import (
	"github.com/fogleman/gg"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

const (
	outlineWidth = 1.0
	hatchSpacing = 8.0
	hatchWidth   = 1.0
	layerAlpha   = 0.75
)

func drawReferenceLayers(dc *gg.Context, proj projection, layers domain.ReferenceLayers) {
	dc.SetRGBA(0.85, 0.85, 0.85, layerAlpha)
	dc.SetLineWidth(0.8)
	for _, ls := range layers.Boundaries {
		strokeLine(dc, proj, ls)
	}

	dc.SetRGBA(1, 0, 0, layerAlpha)
	dc.SetLineWidth(0.6)
	for _, ls := range layers.Highways {
		strokeLine(dc, proj, ls)
	}
}

func strokeLine(dc *gg.Context, proj projection, ls orb.LineString) {
	if len(ls) < 2 {
		return
	}
	dc.NewSubPath()
	for i, pt := range ls {
		x, y := proj.point(pt)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.Stroke()
}

// drawFeature fills every outer ring of f, hatches it when significant, then
// strokes a thin dark outline.
func drawFeature(dc *gg.Context, proj projection, f domain.Feature, style domain.Style) {
	for _, ring := range domain.NormalizeGeometry(f.Geometry) {
		if !ring.Drawable() {
			continue
		}

		fill := style.Fill.RGBA
		traceRing(dc, proj, ring)
		dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(style.Alpha*255))
		dc.Fill()

		if style.Hatched {
			hatch(dc, proj, ring)
		}

		traceRing(dc, proj, ring)
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.SetLineWidth(outlineWidth)
		dc.Stroke()
	}
}

func traceRing(dc *gg.Context, proj projection, ring domain.Ring) {
	dc.NewSubPath()
	for i, pt := range ring {
		x, y := proj.point(pt)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	dc.ClosePath()
}

// hatch clips to the ring and draws a light cross-hatch. Light strokes are
// used because the canvas background is dark.
func hatch(dc *gg.Context, proj projection, ring domain.Ring) {
	b := ring.Bound()
	x0, y0 := proj.point(orb.Point{b.Min.Lon(), b.Max.Lat()})
	x1, y1 := proj.point(orb.Point{b.Max.Lon(), b.Min.Lat()})
	span := (x1 - x0) + (y1 - y0)

	dc.Push()
	defer dc.Pop()

	traceRing(dc, proj, ring)
	dc.Clip()

	dc.SetRGBA(0.9, 0.9, 0.9, 0.8)
	dc.SetLineWidth(hatchWidth)
	for d := 0.0; d <= span; d += hatchSpacing {
		dc.DrawLine(x0+d, y0, x0+d-(y1-y0), y1)
		dc.DrawLine(x0+d-(y1-y0), y0, x0+d, y1)
	}
	dc.Stroke()
}
