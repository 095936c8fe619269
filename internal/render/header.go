package render

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

const headerScale = 0.4

var headerKeys = map[domain.Category]string{
	domain.CategoryCategorical:   "cat",
	domain.CategoryTornado:       "tor",
	domain.CategoryWind:          "wind",
	domain.CategoryHail:          "hail",
	domain.CategoryProbabilistic: "prob",
	domain.CategoryDay4to8:       "d48",
}

// HeaderFile returns the overlay file name for c, e.g. wtus_cat_header.png.
func HeaderFile(c domain.Category) (string, error) {
	key, ok := headerKeys[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	return "wtus_" + key + "_header.png", nil
}

// drawHeader overlays the category header graphic. Without an overlay
// directory, or when the file is missing, a text banner is drawn instead.
func (c *Compositor) drawHeader(dc *gg.Context, req domain.OutlookRequest) {
	if img, err := c.loadHeader(req.Category); err == nil {
		w := int(float64(img.Bounds().Dx()) * headerScale)
		h := int(float64(img.Bounds().Dy()) * headerScale)
		if w > 0 && h > 0 {
			scaled := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
			dc.DrawImage(scaled, int(0.3*float64(c.width)), int(0.05*float64(c.height)))
			return
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("header overlay unreadable, using text banner", "category", req.Category, "error", err)
	}

	title := fmt.Sprintf("SPC Day %s %s Outlook", req.Day, req.Category.Title())
	if req.Day == domain.DayTest {
		title = fmt.Sprintf("SPC %s Outlook (archived test)", req.Category.Title())
	}
	bannerH := 0.06 * float64(c.height)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, float64(c.width), bannerH)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(title, float64(c.width)/2, bannerH/2, 0.5, 0.5)
}

func (c *Compositor) loadHeader(cat domain.Category) (image.Image, error) {
	if c.overlayDir == "" {
		return nil, fs.ErrNotExist
	}
	name, err := HeaderFile(cat)
	if err != nil {
		return nil, err
	}
	return gg.LoadPNG(filepath.Join(c.overlayDir, name))
}
