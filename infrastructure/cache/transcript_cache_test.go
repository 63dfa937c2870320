package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tube-chat/domain/model"
)

func testResult(videoID string) *model.TranscriptResult {
	return &model.TranscriptResult{
		Metadata: model.VideoMetadata{VideoID: videoID, Title: "Title " + videoID, Author: "Author"},
		Segments: []model.TranscriptSegment{{Text: "hello", Offset: 0, Duration: 1.5}},
		FullText: "hello",
	}
}

func newTestCache(capacity int, ttl time.Duration) (*TranscriptCache, *time.Time) {
	c := NewTranscriptCache(capacity, ttl)
	now := time.Unix(1700000000, 0)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCacheSetAndGet(t *testing.T) {
	c, _ := newTestCache(10, time.Hour)

	c.Set("video000001", testResult("video000001"))

	got, ok := c.Get("video000001")
	require.True(t, ok)
	assert.Equal(t, "video000001", got.Metadata.VideoID)
	assert.Equal(t, "hello", got.FullText)
}

func TestCacheMissForUnknownKey(t *testing.T) {
	c, _ := newTestCache(10, time.Hour)

	got, ok := c.Get("video000001")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheIgnoresErrorResults(t *testing.T) {
	c, _ := newTestCache(10, time.Hour)

	c.Set("video000001", &model.TranscriptResult{Error: "No transcript available for this video"})
	c.Set("video000002", nil)

	_, ok := c.Get("video000001")
	assert.False(t, ok)
	_, ok = c.Get("video000002")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Size)
}

func TestCacheEvictsLeastRecentlyUsedAtCapacity(t *testing.T) {
	c, _ := newTestCache(3, time.Hour)

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("video%06d", i)
		c.Set(id, testResult(id))
	}

	// video000000 is oldest; inserting a fourth entry evicts it.
	c.Set("video000003", testResult("video000003"))

	_, ok := c.Get("video000000")
	assert.False(t, ok)
	_, ok = c.Get("video000001")
	assert.True(t, ok)
	assert.Equal(t, 3, c.Stats().Size)
}

func TestCacheGetRefreshesEvictionOrder(t *testing.T) {
	c, _ := newTestCache(3, time.Hour)

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("video%06d", i)
		c.Set(id, testResult(id))
	}

	// Touching the oldest entry makes video000001 the eviction candidate.
	_, ok := c.Get("video000000")
	require.True(t, ok)

	c.Set("video000003", testResult("video000003"))

	_, ok = c.Get("video000000")
	assert.True(t, ok)
	_, ok = c.Get("video000001")
	assert.False(t, ok)
}

func TestCacheReplaceDoesNotEvict(t *testing.T) {
	c, _ := newTestCache(2, time.Hour)

	c.Set("video000001", testResult("video000001"))
	c.Set("video000002", testResult("video000002"))
	c.Set("video000001", testResult("video000001"))

	_, ok := c.Get("video000002")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Stats().Size)
}

func TestCacheExpiry(t *testing.T) {
	c, now := newTestCache(10, time.Hour)

	c.Set("video000001", testResult("video000001"))
	*now = now.Add(30 * time.Minute)
	c.Set("video000002", testResult("video000002"))

	*now = now.Add(45 * time.Minute)

	// First entry is 75 minutes old and expired; Get deletes it on contact.
	_, ok := c.Get("video000001")
	assert.False(t, ok)
	_, ok = c.Get("video000002")
	assert.True(t, ok)
}

func TestCacheClearExpired(t *testing.T) {
	c, now := newTestCache(10, time.Hour)

	c.Set("video000001", testResult("video000001"))
	c.Set("video000002", testResult("video000002"))
	*now = now.Add(30 * time.Minute)
	c.Set("video000003", testResult("video000003"))

	*now = now.Add(45 * time.Minute)

	removed := c.ClearExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Stats().Size)

	_, ok := c.Get("video000003")
	assert.True(t, ok)
}

func TestCacheStats(t *testing.T) {
	c, now := newTestCache(10, time.Hour)

	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, 10, stats.Capacity)
	assert.Nil(t, stats.OldestCreatedAt)
	assert.Nil(t, stats.NewestCreatedAt)

	first := *now
	c.Set("video000001", testResult("video000001"))
	*now = now.Add(10 * time.Minute)
	second := *now
	c.Set("video000002", testResult("video000002"))

	stats = c.Stats()
	assert.Equal(t, 2, stats.Size)
	require.NotNil(t, stats.OldestCreatedAt)
	require.NotNil(t, stats.NewestCreatedAt)
	assert.Equal(t, first, *stats.OldestCreatedAt)
	assert.Equal(t, second, *stats.NewestCreatedAt)
}
