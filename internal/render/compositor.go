// Package render composites outlook polygons, reference geography, and a
// header graphic into a PNG map.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 800
)

// Compositor draws outlook maps. It holds no per-request state, so one value
// may serve concurrent requests for distinct artifacts.
type Compositor struct {
	outputDir  string
	overlayDir string
	width      int
	height     int
	basemap    domain.Basemap
	logger     *slog.Logger
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithBasemap draws raster imagery beneath the reference layers.
func WithBasemap(b domain.Basemap) Option {
	return func(c *Compositor) { c.basemap = b }
}

// WithOverlayDir sets where category header PNGs are looked up.
func WithOverlayDir(dir string) Option {
	return func(c *Compositor) { c.overlayDir = dir }
}

// WithSize overrides the canvas dimensions.
func WithSize(width, height int) Option {
	return func(c *Compositor) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// New creates a Compositor writing artifacts under outputDir.
func New(outputDir string, logger *slog.Logger, opts ...Option) *Compositor {
	c := &Compositor{
		outputDir: outputDir,
		width:     DefaultWidth,
		height:    DefaultHeight,
		logger:    logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Render draws fc for req and writes it to the request's artifact path,
// replacing any earlier render of the same key. Layers are drawn in order:
// background, basemap, reference geography, outlook polygons, header.
func (c *Compositor) Render(ctx context.Context, req domain.OutlookRequest, fc domain.FeatureCollection, layers domain.ReferenceLayers) (domain.RenderedArtifact, error) {
	scale, err := domain.ScaleFor(req.Category)
	if err != nil {
		return domain.RenderedArtifact{}, err
	}
	if !domain.IsAvailable(fc) {
		return domain.RenderedArtifact{}, domain.ErrOutlookUnavailable
	}

	dc := gg.NewContext(c.width, c.height)
	proj := newProjection(domain.Extent, c.width, c.height)

	dc.SetRGB(0, 0, 0)
	dc.Clear()

	c.drawBasemap(ctx, dc)
	drawReferenceLayers(dc, proj, layers)
	for _, f := range fc.Features {
		drawFeature(dc, proj, f, scale.Style(f.Label))
	}
	c.drawHeader(dc, req)

	path := filepath.Join(c.outputDir, req.ArtifactName())
	if err := writePNG(dc, path); err != nil {
		return domain.RenderedArtifact{}, err
	}
	return domain.NewRenderedArtifact(req, path), nil
}

func (c *Compositor) drawBasemap(ctx context.Context, dc *gg.Context) {
	if c.basemap == nil {
		return
	}
	img, err := c.basemap.Image(ctx, domain.Extent, c.width, c.height)
	if err != nil {
		c.logger.Warn("basemap unavailable, drawing without it", "error", err)
		return
	}
	dc.DrawImage(fit(img, c.width, c.height), 0, 0)
}

// fit scales img to exactly width x height when it does not already match.
func fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// writePNG encodes to a temp file in the target directory and renames it into
// place, so readers never observe a partially written image.
func writePNG(dc *gg.Context, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".outlook-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if err := dc.EncodePNG(tmp); err != nil {
		tmp.Close() //nolint:errcheck,gosec // encode error takes precedence
		return fmt.Errorf("encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}
