package repository

import (
	"context"

	"tube-chat/domain/model"
)

// IVideoMetadata fetches normalized metadata for a video ID. Implementations
// degrade from the rich Data API to a no-key fallback; a degraded record is
// still a valid result. An error means total metadata unavailability.
type IVideoMetadata interface {
	GetVideoMetadata(ctx context.Context, videoID string) (*model.VideoMetadata, error)
}

// ITranscript fetches the ordered caption segments for a video ID. The
// returned error carries a classified, human-readable message (captions
// disabled, no transcript, or a generic fetch failure).
type ITranscript interface {
	GetTranscript(ctx context.Context, videoID string) ([]model.TranscriptSegment, error)
}
