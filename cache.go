package casepage

import (
	"sync"
	"time"
)

// TopCasesCache is an in-memory cache of the most viewed cases with TTL.
type TopCasesCache struct {
	mu      sync.RWMutex
	cases   []CaseStats
	loaded  bool
	fetched time.Time
	ttl     time.Duration
	limit   int
	store   *Store
}

// NewTopCasesCache creates a TopCasesCache that lists up to limit cases.
func NewTopCasesCache(s *Store, limit int, ttl time.Duration) *TopCasesCache {
	return &TopCasesCache{store: s, limit: limit, ttl: ttl}
}

func (c *TopCasesCache) valid() bool {
	return c.loaded && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *TopCasesCache) Invalidate() {
	c.mu.Lock()
	c.cases = nil
	c.loaded = false
	c.mu.Unlock()
}

// ListTopCases returns the cached most-viewed cases, reloading them from the
// store once the TTL has passed. Callers must not modify the result.
func (c *TopCasesCache) ListTopCases() ([]CaseStats, error) {
	c.mu.RLock()
	if c.valid() {
		cases := c.cases
		c.mu.RUnlock()
		return cases, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.cases, nil
	}
	cases, err := c.store.ListTopCases(c.limit)
	if err != nil {
		return nil, err
	}
	c.cases = cases
	c.loaded = true
	c.fetched = time.Now()
	return c.cases, nil
}
