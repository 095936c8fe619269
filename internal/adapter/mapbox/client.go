package mapbox

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Static Images may return JPEG for satellite styles
	_ "image/png"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/paulmach/orb"
)

// maxDimension is the largest width or height the Static Images API serves.
const maxDimension = 1280

// Client implements domain.Basemap using the Mapbox Static Images API.
type Client struct {
	token      string
	style      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Mapbox static image client for style, e.g. "mapbox/dark-v11".
func NewClient(token, style string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		style: style,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/styles/v1",
		logger:  logger,
	}
}

// Image fetches a Web Mercator raster of bound and reprojects it to a
// width x height equirectangular image.
func (c *Client) Image(ctx context.Context, bound orb.Bound, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid basemap size %dx%d", width, height)
	}

	reqW, reqH := requestSize(bound, width)
	bbox := fmt.Sprintf("[%.4f,%.4f,%.4f,%.4f]", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
	u := fmt.Sprintf("%s/%s/static/%s/%dx%d", c.baseURL, c.style, bbox, reqW, reqH)
	params := url.Values{
		"access_token": {c.token},
		"attribution":  {"false"},
		"logo":         {"false"},
	}

	src, err := c.doRequest(ctx, u+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return reproject(src, bound, width, height), nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("static image request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode static image: %w", err)
	}
	c.logger.Debug("basemap fetched", "format", format, "bounds", img.Bounds().String(), "duration", time.Since(start))
	return img, nil
}

// mercatorY is the spherical Web Mercator ordinate of lat, in radians.
func mercatorY(lat float64) float64 {
	phi := lat * math.Pi / 180
	return math.Log(math.Tan(math.Pi/4 + phi/2))
}

// requestSize picks a Mercator image size whose aspect matches bound, so
// Mapbox fits the box without padding.
func requestSize(bound orb.Bound, width int) (int, int) {
	w := min(width, maxDimension)
	lonSpan := (bound.Max.Lon() - bound.Min.Lon()) * math.Pi / 180
	ySpan := mercatorY(bound.Max.Lat()) - mercatorY(bound.Min.Lat())
	h := int(math.Round(float64(w) * ySpan / lonSpan))
	if h > maxDimension {
		w = int(math.Round(float64(w) * maxDimension / float64(h)))
		h = maxDimension
	}
	return w, max(h, 1)
}

// reproject resamples a Mercator image of bound into an equirectangular one.
// Columns map linearly in both projections; rows follow the Mercator curve.
func reproject(src image.Image, bound orb.Bound, width, height int) image.Image {
	sb := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	top := mercatorY(bound.Max.Lat())
	span := top - mercatorY(bound.Min.Lat())
	latSpan := bound.Max.Lat() - bound.Min.Lat()

	for y := range height {
		lat := bound.Max.Lat() - (float64(y)+0.5)/float64(height)*latSpan
		sy := sb.Min.Y + clamp(int((top-mercatorY(lat))/span*float64(sb.Dy())), sb.Dy()-1)
		for x := range width {
			sx := sb.Min.X + clamp(int((float64(x)+0.5)/float64(width)*float64(sb.Dx())), sb.Dx()-1)
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}
