package mapbox

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

const testToken = "test-token"

func testClient(baseURL string) *Client {
	return &Client{
		token:      testToken,
		style:      "mapbox/dark-v11",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// rowImage encodes each row index in the red channel.
func rowImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(y), 0, 0, 255})
		}
	}
	return img
}

func TestClient_Image_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mapbox/dark-v11/static/[-125.0000,20.0000,-66.0000,60.0000]/1000x933", r.URL.Path)
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))
		assert.Equal(t, "false", r.URL.Query().Get("logo"))
		assert.Equal(t, "false", r.URL.Query().Get("attribution"))

		w.Header().Set("Content-Type", "image/png")
		require.NoError(t, png.Encode(w, rowImage(100, 93)))
	}))
	defer srv.Close()

	img, err := testClient(srv.URL).Image(context.Background(), domain.Extent, 1000, 800)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1000, 800), img.Bounds())
}

func TestClient_Image_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not Authorized - Invalid Token"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Image(context.Background(), domain.Extent, 1000, 800)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestClient_Image_NotAnImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Image(context.Background(), domain.Extent, 1000, 800)
	assert.ErrorContains(t, err, "decode static image")
}

func TestClient_Image_InvalidSize(t *testing.T) {
	_, err := testClient("http://unused").Image(context.Background(), domain.Extent, 0, 800)
	assert.Error(t, err)
}

func TestRequestSize(t *testing.T) {
	w, h := requestSize(domain.Extent, 1000)
	assert.Equal(t, 1000, w)
	assert.InDelta(t, 933, h, 1)

	w, h = requestSize(domain.Extent, 4000)
	assert.LessOrEqual(t, w, maxDimension)
	assert.LessOrEqual(t, h, maxDimension)
}

func TestReproject_FollowsMercatorRows(t *testing.T) {
	src := rowImage(50, 100)
	dst := reproject(src, domain.Extent, 50, 100)

	red := func(y int) uint8 {
		return color.RGBAModel.Convert(dst.At(10, y)).(color.RGBA).R
	}

	assert.LessOrEqual(t, red(0), uint8(2))
	assert.GreaterOrEqual(t, red(99), uint8(97))
	// Latitude 40 sits below the Mercator midpoint of the 20-60 band.
	assert.Greater(t, red(50), uint8(52))
	assert.Less(t, red(50), uint8(62))
}
