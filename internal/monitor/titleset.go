package monitor

import (
	lru "github.com/hashicorp/golang-lru"
)

// titleSet remembers notified titles up to a fixed capacity. Every sighting
// refreshes recency, so a title that keeps reappearing in the feed is never
// evicted while it is still being published.
type titleSet struct {
	cache *lru.Cache
}

func newTitleSet(capacity int) (*titleSet, error) {
	c, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &titleSet{cache: c}, nil
}

// markNew records title and reports whether it had not been seen before.
func (s *titleSet) markNew(title string) bool {
	if _, ok := s.cache.Get(title); ok {
		return false
	}
	s.cache.Add(title, struct{}{})
	return true
}

func (s *titleSet) len() int {
	return s.cache.Len()
}
