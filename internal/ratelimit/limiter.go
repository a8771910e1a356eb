// Package ratelimit provides an in-memory fixed-window request counter keyed by caller.
package ratelimit

import (
	"sync"
	"time"

	"github.com/Veraticus/aishield/internal/apperrors"
)

// Defaults used when the limiter is configured with zero values.
const (
	DefaultLimit    = 50
	DefaultWindow   = 60 * time.Second
	DefaultCapacity = 1000
)

// Result describes the outcome of a single check.
type Result struct {
	ResetAt   time.Time
	Limit     int
	Remaining int
	Allowed   bool
}

// RetryAfter returns how long the caller should wait, measured from now.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Limiter counts calls per identifier within a fixed window. Each identifier's window
// starts at its first call and its entry expires once the window elapses.
type Limiter struct {
	now      func() time.Time
	windows  map[string]*window
	limit    int
	capacity int
	window   time.Duration
	mu       sync.Mutex
}

type window struct {
	start time.Time
	count int
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithCapacity bounds how many identifiers are tracked at once.
func WithCapacity(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// New creates a limiter allowing limit calls per window.
func New(limit int, windowSize time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}

	l := &Limiter{
		now:      time.Now,
		windows:  make(map[string]*window),
		limit:    limit,
		capacity: DefaultCapacity,
		window:   windowSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Take records a call for id if it is within budget.
func (l *Limiter) Take(id string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[id]
	if w != nil && l.expired(w, now) {
		delete(l.windows, id)
		w = nil
	}
	if w == nil {
		l.makeRoom(now)
		w = &window{start: now}
		l.windows[id] = w
	}

	resetAt := w.start.Add(l.window)
	if w.count >= l.limit {
		return Result{Allowed: false, Limit: l.limit, Remaining: 0, ResetAt: resetAt}
	}

	w.count++
	return Result{Allowed: true, Limit: l.limit, Remaining: l.limit - w.count, ResetAt: resetAt}
}

// Allow reports whether a call for id is permitted, recording it if so.
func (l *Limiter) Allow(id string) bool {
	return l.Take(id).Allowed
}

// Check is Allow returning a rate limit error when the call is rejected.
func (l *Limiter) Check(id string) error {
	res := l.Take(id)
	if res.Allowed {
		return nil
	}
	return apperrors.RateLimited("rate limit", res.RetryAfter(l.now()))
}

// Remaining returns how many calls id has left in its current window.
func (l *Limiter) Remaining(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[id]
	if w == nil || l.expired(w, l.now()) {
		return l.limit
	}
	return l.limit - w.count
}

// Reset forgets id.
func (l *Limiter) Reset(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, id)
}

// Len returns the number of tracked identifiers, including expired ones not yet swept.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func (l *Limiter) expired(w *window, now time.Time) bool {
	return !now.Before(w.start.Add(l.window))
}

// makeRoom evicts expired windows, then the oldest one, until a new entry fits.
// Must be called while holding l.mu.
func (l *Limiter) makeRoom(now time.Time) {
	if len(l.windows) < l.capacity {
		return
	}
	for id, w := range l.windows {
		if l.expired(w, now) {
			delete(l.windows, id)
		}
	}
	for len(l.windows) >= l.capacity {
		var (
			oldestID string
			oldest   time.Time
			found    bool
		)
		for id, w := range l.windows {
			if !found || w.start.Before(oldest) {
				oldestID, oldest, found = id, w.start, true
			}
		}
		delete(l.windows, oldestID)
	}
}
