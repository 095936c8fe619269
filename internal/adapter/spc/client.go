// Package spc retrieves outlook GeoJSON and the advisory RSS feed from the
// Storm Prediction Center.
package spc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

const (
	userAgent   = "storm-outlook-service (+https://github.com/couchcryptid/storm-outlook-service)"
	maxBodySize = 32 << 20 // outlook payloads are well under 10 MB
	snippetSize = 512
)

// Client performs GETs against spc.noaa.gov. One request per call, no retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a client. A zero timeout leaves the transport default in
// place. ratePerSecond <= 0 disables client-side rate limiting.
func NewClient(timeout time.Duration, ratePerSecond float64, logger *slog.Logger) *Client {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// Fetch returns the body at url. Transport failures and non-2xx responses
// are reported as *domain.RetrievalError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.RetrievalError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.RetrievalError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RetrievalError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, snippetSize))
		return nil, &domain.RetrievalError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", snippet),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.RetrievalError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("fetched", "url", url, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}
