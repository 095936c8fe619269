package spc

import (
	"bytes"
	"context"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

// Fetcher is the retrieval dependency of FeedClient.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FeedClient reads the advisory RSS feed.
type FeedClient struct {
	fetcher Fetcher
	url     string
}

// NewFeedClient creates a feed reader for url.
func NewFeedClient(fetcher Fetcher, url string) *FeedClient {
	return &FeedClient{fetcher: fetcher, url: url}
}

// Advisories fetches and parses the feed. Entries without a title are
// skipped because titles are the notification identity.
func (f *FeedClient) Advisories(ctx context.Context) ([]domain.Advisory, error) {
	body, err := f.fetcher.Fetch(ctx, f.url)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &domain.RetrievalError{URL: f.url, Err: err}
	}

	out := make([]domain.Advisory, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		a := domain.Advisory{Title: title, Link: item.Link}
		if item.PublishedParsed != nil {
			a.Published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			a.Published = item.UpdatedParsed.UTC()
		}
		out = append(out, a)
	}
	return out, nil
}
