package usecase

import (
	"context"
	"strings"
	"sync"

	"tube-chat/domain/model"
	"tube-chat/domain/repository"
	"tube-chat/infrastructure/logger"
	"tube-chat/infrastructure/utils"
)

// ErrInvalidURL is the error string attached to results for unparseable URLs.
const ErrInvalidURL = "Invalid YouTube URL"

// ITranscriptExtractor defines the interface for transcript extraction
type ITranscriptExtractor interface {
	// ExtractTranscript resolves a URL to a video ID and produces the
	// uniform result shape. It never returns an error: failures are
	// carried inside the result so batch processing can continue.
	ExtractTranscript(ctx context.Context, url string) *model.TranscriptResult
}

// TranscriptExtractor composes the URL extractor, cache and the two fetchers.
type TranscriptExtractor struct {
	metadata repository.IVideoMetadata
	captions repository.ITranscript
	cache    repository.ITranscriptCache
}

// NewTranscriptExtractor creates a new extraction orchestrator.
func NewTranscriptExtractor(metadata repository.IVideoMetadata, captions repository.ITranscript, cache repository.ITranscriptCache) ITranscriptExtractor {
	return &TranscriptExtractor{
		metadata: metadata,
		captions: captions,
		cache:    cache,
	}
}

// ExtractTranscript runs one URL through the pipeline: resolve, consult the
// cache, fetch metadata and transcript concurrently on a miss, assemble and
// cache the result. Cache hits bypass rate limiting entirely.
func (u *TranscriptExtractor) ExtractTranscript(ctx context.Context, rawURL string) *model.TranscriptResult {
	videoID, ok := utils.ExtractVideoID(rawURL)
	if !ok {
		logger.GetLogger().WithField("url", rawURL).Info("Could not resolve a video ID from URL")
		return &model.TranscriptResult{
			Metadata: model.VideoMetadata{
				Title:  model.DefaultTitle,
				Author: model.DefaultAuthor,
				URL:    rawURL,
			},
			Error: ErrInvalidURL,
		}
	}

	if cached, hit := u.cache.Get(videoID); hit {
		logger.GetLogger().WithField("videoId", videoID).Debug("Transcript cache hit")
		return cached
	}

	// Metadata and transcript are independent network calls gated by
	// independent rate limiters, so they run in parallel.
	var (
		wg       sync.WaitGroup
		meta     *model.VideoMetadata
		metaErr  error
		segments []model.TranscriptSegment
		segErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		meta, metaErr = u.metadata.GetVideoMetadata(ctx, videoID)
	}()
	go func() {
		defer wg.Done()
		segments, segErr = u.captions.GetTranscript(ctx, videoID)
	}()
	wg.Wait()

	if metaErr != nil || meta == nil || segErr != nil {
		return u.errorResult(ctx, videoID, meta, segErr)
	}

	texts := make([]string, 0, len(segments))
	for _, segment := range segments {
		texts = append(texts, segment.Text)
	}
	result := &model.TranscriptResult{
		Metadata: *meta,
		Segments: segments,
		FullText: strings.Join(texts, " "),
	}
	u.cache.Set(videoID, result)
	return result
}

// errorResult builds the uniform failure shape. Metadata is re-attempted when
// the parallel fetch yielded none, so the chat layer can still show
// title/author for a video whose captions are unavailable.
func (u *TranscriptExtractor) errorResult(ctx context.Context, videoID string, meta *model.VideoMetadata, segErr error) *model.TranscriptResult {
	if meta == nil {
		if retried, err := u.metadata.GetVideoMetadata(ctx, videoID); err == nil {
			meta = retried
		}
	}
	if meta == nil {
		meta = &model.VideoMetadata{
			VideoID: videoID,
			Title:   model.DefaultTitle,
			Author:  model.DefaultAuthor,
			URL:     "https://www.youtube.com/watch?v=" + videoID,
		}
	}

	message := "Failed to extract transcript"
	if segErr != nil {
		message = segErr.Error()
	}
	// Missing captions are a common, expected outcome, not a system fault.
	logger.GetLogger().
		WithField("videoId", videoID).
		WithField("error", message).
		Info("Transcript extraction failed")

	return &model.TranscriptResult{
		Metadata: *meta,
		Error:    message,
	}
}
