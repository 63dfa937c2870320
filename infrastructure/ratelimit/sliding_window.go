package ratelimit

import (
	"context"
	"sync"
	"time"

	"tube-chat/domain/repository"
)

// SlidingWindow counts raw request timestamps inside a rolling window. It is
// deliberately not a token bucket: a burst that fills the window blocks new
// requests until the oldest timestamp ages out. Timestamps older than the
// window are purged lazily before every read or write.
type SlidingWindow struct {
	mu          sync.Mutex
	name        string
	maxRequests int
	window      time.Duration
	timestamps  []time.Time
	now         func() time.Time
}

var _ repository.IRateLimiter = (*SlidingWindow)(nil)

// NewSlidingWindow creates an independent limiter instance. name is only used
// for status reporting.
func NewSlidingWindow(name string, maxRequests int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		name:        name,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// purge drops timestamps older than the window. Callers must hold mu.
func (s *SlidingWindow) purge(now time.Time) {
	cutoff := now.Add(-s.window)
	kept := s.timestamps[:0]
	for _, ts := range s.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	s.timestamps = kept
}

// waitTime computes how long until the next slot opens. Callers must hold mu.
func (s *SlidingWindow) waitTime(now time.Time) time.Duration {
	s.purge(now)
	if len(s.timestamps) < s.maxRequests {
		return 0
	}
	wait := s.timestamps[0].Add(s.window).Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait
}

// CanMakeRequest reports whether a request would be admitted right now.
func (s *SlidingWindow) CanMakeRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purge(s.now())
	return len(s.timestamps) < s.maxRequests
}

// RecordRequest appends the current time to the window.
func (s *SlidingWindow) RecordRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.purge(now)
	s.timestamps = append(s.timestamps, now)
}

// WaitTime returns how long until the next slot opens; zero when under capacity.
func (s *SlidingWindow) WaitTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitTime(s.now())
}

// AwaitSlot blocks until a slot opens, then records the request. The wait is
// bounded only by the window length; ctx cancellation aborts it. Another
// caller can take a freed slot first, so the wait loops until one is won.
func (s *SlidingWindow) AwaitSlot(ctx context.Context) error {
	for {
		s.mu.Lock()
		now := s.now()
		wait := s.waitTime(now)
		if wait == 0 {
			s.timestamps = append(s.timestamps, now)
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Reset empties the window.
func (s *SlidingWindow) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timestamps = nil
}

// Status returns a snapshot for the operability endpoint.
func (s *SlidingWindow) Status() repository.RateLimiterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	wait := s.waitTime(now)
	return repository.RateLimiterStatus{
		Name:     s.name,
		Current:  len(s.timestamps),
		Limit:    s.maxRequests,
		WindowMs: s.window.Milliseconds(),
		WaitMs:   wait.Milliseconds(),
	}
}
