package repository

import (
	"context"
	"time"
)

// RateLimiterStatus is a point-in-time snapshot for observability endpoints.
type RateLimiterStatus struct {
	Name     string `json:"name"`
	Current  int    `json:"current"`
	Limit    int    `json:"limit"`
	WindowMs int64  `json:"window_ms"`
	WaitMs   int64  `json:"wait_ms"`
}

// IRateLimiter is a sliding-window request counter protecting one class of
// external call. Instances are independent; they never share state.
type IRateLimiter interface {
	// CanMakeRequest reports whether a request would be admitted right now.
	CanMakeRequest() bool
	// RecordRequest appends the current time to the window.
	RecordRequest()
	// WaitTime returns how long until the next slot opens; zero when under
	// capacity.
	WaitTime() time.Duration
	// AwaitSlot blocks until a slot opens, then records the request. The
	// wait is bounded only by the window length; ctx cancellation aborts it.
	AwaitSlot(ctx context.Context) error
	// Reset empties the window.
	Reset()
	Status() RateLimiterStatus
}
