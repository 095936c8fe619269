package mapbox

import (
	"context"
	"fmt"
	"image"

	lru "github.com/hashicorp/golang-lru"
	"github.com/paulmach/orb"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
	"github.com/couchcryptid/storm-outlook-service/internal/observability"
)

// CachedBasemap wraps a Basemap with an in-memory LRU cache. The map extent
// never changes, so in practice one entry serves every render.
type CachedBasemap struct {
	inner   domain.Basemap
	cache   *lru.Cache
	metrics *observability.Metrics
}

// NewCachedBasemap creates a cache decorator around a basemap.
func NewCachedBasemap(inner domain.Basemap, maxEntries int, metrics *observability.Metrics) (*CachedBasemap, error) {
	c, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create basemap cache: %w", err)
	}
	return &CachedBasemap{inner: inner, cache: c, metrics: metrics}, nil
}

func (c *CachedBasemap) Image(ctx context.Context, bound orb.Bound, width, height int) (image.Image, error) {
	key := fmt.Sprintf("%.4f,%.4f,%.4f,%.4f|%dx%d",
		bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat(), width, height)
	if v, ok := c.cache.Get(key); ok {
		c.metrics.BasemapCache.WithLabelValues("hit").Inc()
		return v.(image.Image), nil
	}
	c.metrics.BasemapCache.WithLabelValues("miss").Inc()

	img, err := c.inner.Image(ctx, bound, width, height)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, img)
	return img, nil
}
