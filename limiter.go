package casepage

import (
	"sync"
	"time"
)

// ViewLimiter is a per-key sliding-window limiter. casepage keys it by
// client IP and case so reloads do not inflate view counts.
type ViewLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	done   chan struct{}
	once   sync.Once
}

// NewViewLimiter creates a ViewLimiter that allows max hits per key per window.
// Call Close to stop its cleanup goroutine.
func NewViewLimiter(max int, window time.Duration) *ViewLimiter {
	l := &ViewLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		done:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *ViewLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-l.window)
			l.mu.Lock()
			for key, hits := range l.hits {
				kept := pruneBefore(hits, cutoff)
				if len(kept) == 0 {
					delete(l.hits, key)
				} else {
					l.hits[key] = kept
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

// Allow reports whether key is under the limit and, if so, records a hit.
func (l *ViewLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := pruneBefore(l.hits[key], now.Add(-l.window))
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (l *ViewLimiter) Close() {
	l.once.Do(func() { close(l.done) })
}

func pruneBefore(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
