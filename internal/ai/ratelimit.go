package ai

import (
	"sync"
	"time"
)

// Limiter caps calls per action name over a sliding window. It is
// constructed once per process and owned by the Client; nothing here relies
// on ambient package state.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time

	// now is swapped out in tests.
	now func() time.Time
}

// NewLimiter allows max calls per action within window.
func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records a call for action and reports whether it is within the
// limit. Rejected calls are not recorded.
func (l *Limiter) Allow(action string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	kept := l.hits[action][:0]
	for _, t := range l.hits[action] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.hits[action] = kept

	if len(kept) >= l.max {
		return false
	}
	l.hits[action] = append(kept, now)
	return true
}
