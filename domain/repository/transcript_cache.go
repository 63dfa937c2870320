package repository

import (
	"time"

	"tube-chat/domain/model"
)

// CacheStats is a point-in-time snapshot for observability endpoints.
type CacheStats struct {
	Size            int        `json:"size"`
	Capacity        int        `json:"capacity"`
	OldestCreatedAt *time.Time `json:"oldest_created_at,omitempty"`
	NewestCreatedAt *time.Time `json:"newest_created_at,omitempty"`
}

// ITranscriptCache is the bounded in-memory store of extraction results keyed
// by video ID. Only error-free results are stored; reads refresh recency.
type ITranscriptCache interface {
	// Get returns the cached result for the video ID, dropping it first if
	// its TTL has elapsed. A hit counts as use for eviction ordering.
	Get(videoID string) (*model.TranscriptResult, bool)
	// Set stores an error-free result, evicting the least recently used
	// entry when at capacity. Results carrying an error are ignored.
	Set(videoID string, result *model.TranscriptResult)
	// ClearExpired sweeps all expired entries and returns how many were removed.
	ClearExpired() int
	Stats() CacheStats
}
