package model

import "time"

// Placeholder values used when the upstream APIs return no usable field.
const (
	DefaultTitle  = "Unknown title"
	DefaultAuthor = "Unknown author"
)

// VideoMetadata represents normalized metadata for a single YouTube video.
// It is produced fresh on every metadata fetch and never mutated afterwards.
type VideoMetadata struct {
	VideoID       string    `json:"video_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ChannelID     string    `json:"channel_id"`
	DurationSec   int64     `json:"duration_seconds"`
	Thumbnail     string    `json:"thumbnail"`
	URL           string    `json:"url"`
	PublishedAt   time.Time `json:"published_at"`
	ViewCount     int64     `json:"view_count"`
	LikeCount     int64     `json:"like_count"`
	CommentCount  int64     `json:"comment_count"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	Definition    string    `json:"definition,omitempty"`
	HasCaptions   bool      `json:"has_captions,omitempty"`
	Language      string    `json:"language,omitempty"`
	LiveBroadcast string    `json:"live_broadcast,omitempty"`
}

// TranscriptSegment is one timed caption line. Offset and Duration are seconds.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Offset   float64 `json:"offset"`
	Duration float64 `json:"duration"`
}

// TranscriptResult is the unit of work produced by the extractor and stored in
// the cache. Success and failure share this shape so a multi-link message can
// proceed past individual failures: when Error is set, Segments and FullText
// are empty and Metadata is best-effort.
type TranscriptResult struct {
	Metadata VideoMetadata       `json:"metadata"`
	Segments []TranscriptSegment `json:"segments"`
	FullText string              `json:"full_text"`
	Error    string              `json:"error,omitempty"`
}

// OK reports whether the extraction succeeded.
func (r *TranscriptResult) OK() bool {
	return r.Error == ""
}
