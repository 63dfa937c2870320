package cache

import (
	"container/list"
	"sync"
	"time"

	"tube-chat/domain/model"
	"tube-chat/domain/repository"
	"tube-chat/infrastructure/logger"
)

// entry is owned exclusively by the cache. A Set for an existing key replaces
// the entry wholesale; entries are never updated in place.
type entry struct {
	videoID   string
	result    *model.TranscriptResult
	createdAt time.Time
	expiresAt time.Time
}

// TranscriptCache is a bounded in-memory store with TTL expiry and LRU
// eviction, keyed by video ID. Its purpose is shielding the rate-limited
// network paths: a hit bypasses both fetchers entirely.
type TranscriptCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = least recently used
	now      func() time.Time
}

var _ repository.ITranscriptCache = (*TranscriptCache)(nil)

// NewTranscriptCache creates a cache holding at most capacity entries, each
// expiring ttl after insertion.
func NewTranscriptCache(capacity int, ttl time.Duration) *TranscriptCache {
	return &TranscriptCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the cached result for the video ID. An expired entry is deleted
// on the spot. A hit moves the entry to most-recently-used position: read
// access counts as use for eviction ordering.
func (c *TranscriptCache) Get(videoID string) (*model.TranscriptResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[videoID]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if !e.expiresAt.After(c.now()) {
		c.order.Remove(el)
		delete(c.entries, videoID)
		return nil, false
	}
	c.order.MoveToBack(el)
	return e.result, true
}

// Set stores an error-free result with a fresh TTL, evicting the least
// recently used entry when at capacity. Results carrying an error are ignored
// so transient fetch failures are never served from cache.
func (c *TranscriptCache) Set(videoID string, result *model.TranscriptResult) {
	if result == nil || result.Error != "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if el, ok := c.entries[videoID]; ok {
		c.order.Remove(el)
		delete(c.entries, videoID)
	}
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			evicted := oldest.Value.(*entry)
			c.order.Remove(oldest)
			delete(c.entries, evicted.videoID)
			logger.GetLogger().WithField("videoId", evicted.videoID).Debug("Evicted least recently used transcript")
		}
	}
	el := c.order.PushBack(&entry{
		videoID:   videoID,
		result:    result,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	})
	c.entries[videoID] = el
}

// ClearExpired sweeps all expired entries, independent of access patterns, so
// memory stays bounded even under low traffic. Returns the number removed.
func (c *TranscriptCache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		e := el.Value.(*entry)
		if !e.expiresAt.After(now) {
			c.order.Remove(el)
			delete(c.entries, e.videoID)
			removed++
		}
		el = next
	}
	return removed
}

// Stats returns a snapshot for the observability endpoint.
func (c *TranscriptCache) Stats() repository.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := repository.CacheStats{
		Size:     c.order.Len(),
		Capacity: c.capacity,
	}
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)
		if stats.OldestCreatedAt == nil || e.createdAt.Before(*stats.OldestCreatedAt) {
			created := e.createdAt
			stats.OldestCreatedAt = &created
		}
		if stats.NewestCreatedAt == nil || e.createdAt.After(*stats.NewestCreatedAt) {
			created := e.createdAt
			stats.NewestCreatedAt = &created
		}
	}
	return stats
}
