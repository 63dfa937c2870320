package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tube-chat/domain/dto"
	"tube-chat/domain/model"
	"tube-chat/domain/repository"
	"tube-chat/infrastructure/logger"
	"tube-chat/infrastructure/utils"

	"golang.org/x/sync/errgroup"
)

const (
	noURLsMessage = "Please share a YouTube link and I'll analyze the video for you. " +
		"Paste a URL like https://www.youtube.com/watch?v=... and ask me anything about it."
	allFailedMessage = "I couldn't extract a transcript from the video link(s) you shared. " +
		"The videos may have captions disabled or may no longer be available. Please try a different video."
	defaultQuery = "summarize key points and answer questions"
)

// ITranscriptAgent defines the interface for one conversational turn
type ITranscriptAgent interface {
	// HandleMessage runs one chat turn. Events arrive on the returned
	// channel in a fixed order: sources (when any video succeeded),
	// response chunks, then a terminal end or error. The channel is closed
	// after the terminal event.
	HandleMessage(ctx context.Context, req *dto.ChatRequest) <-chan model.StreamEvent
}

// TranscriptAgent turns chat messages into transcript-grounded streamed answers.
type TranscriptAgent struct {
	extractor ITranscriptExtractor
	generator repository.ITextGenerator
	now       func() time.Time
}

// NewTranscriptAgent creates a new agent instance.
func NewTranscriptAgent(extractor ITranscriptExtractor, generator repository.ITextGenerator) ITranscriptAgent {
	return &TranscriptAgent{
		extractor: extractor,
		generator: generator,
		now:       time.Now,
	}
}

func (a *TranscriptAgent) HandleMessage(ctx context.Context, req *dto.ChatRequest) <-chan model.StreamEvent {
	events := make(chan model.StreamEvent, 8)
	go a.run(ctx, req, events)
	return events
}

func (a *TranscriptAgent) run(ctx context.Context, req *dto.ChatRequest, events chan<- model.StreamEvent) {
	defer close(events)

	urls := utils.DetectURLs(req.Message)
	if len(urls) == 0 {
		events <- model.StreamEvent{Type: model.EventResponse, Chunk: noURLsMessage}
		events <- model.StreamEvent{Type: model.EventEnd}
		return
	}

	results := a.extractAll(ctx, urls)

	// One bad link must not suppress good links' content.
	succeeded := make([]*model.TranscriptResult, 0, len(results))
	for i, result := range results {
		if result.OK() {
			succeeded = append(succeeded, result)
			logger.GetLogger().
				WithField("url", urls[i]).
				WithField("videoId", result.Metadata.VideoID).
				Debug("Transcript extracted")
			continue
		}
		logger.GetLogger().
			WithField("url", urls[i]).
			WithField("error", result.Error).
			Info("Transcript extraction failed for URL")
	}

	if len(succeeded) == 0 {
		events <- model.StreamEvent{Type: model.EventResponse, Chunk: allFailedMessage}
		events <- model.StreamEvent{Type: model.EventEnd}
		return
	}

	events <- model.StreamEvent{Type: model.EventSources, Sources: buildSources(succeeded)}

	genReq := &dto.GenerationRequest{
		Context:            buildContext(succeeded),
		History:            req.History,
		Query:              effectiveQuery(req.Message),
		SystemInstructions: req.SystemInstructions,
		Timestamp:          a.now(),
	}
	err := a.generator.GenerateStream(ctx, genReq, func(chunk string) {
		events <- model.StreamEvent{Type: model.EventResponse, Chunk: chunk}
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Generation stream failed")
		events <- model.StreamEvent{Type: model.EventError, Error: err.Error()}
		return
	}
	events <- model.StreamEvent{Type: model.EventEnd}
}

// extractAll processes the URLs concurrently while preserving input order in
// the returned slice regardless of completion order.
func (a *TranscriptAgent) extractAll(ctx context.Context, urls []string) []*model.TranscriptResult {
	results := make([]*model.TranscriptResult, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = a.extractor.ExtractTranscript(gctx, u)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// buildContext joins each successful result's full text with newlines. A
// successfully fetched video never contributes an empty block: when the
// transcript text is empty, a structured metadata block stands in.
func buildContext(results []*model.TranscriptResult) string {
	blocks := make([]string, 0, len(results))
	for _, result := range results {
		blocks = append(blocks, contextBlock(result))
	}
	return strings.Join(blocks, "\n")
}

func contextBlock(result *model.TranscriptResult) string {
	if result.FullText != "" {
		return result.FullText
	}
	meta := result.Metadata
	var b strings.Builder
	fmt.Fprintf(&b, "Video: %s by %s", meta.Title, meta.Author)
	if meta.DurationSec > 0 {
		fmt.Fprintf(&b, "\nDuration: %d seconds", meta.DurationSec)
	}
	if meta.ViewCount > 0 {
		fmt.Fprintf(&b, "\nViews: %d", meta.ViewCount)
	}
	if !meta.PublishedAt.IsZero() {
		fmt.Fprintf(&b, "\nPublished: %s", meta.PublishedAt.Format("2006-01-02"))
	}
	if meta.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s", meta.Description)
	}
	if len(meta.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s", strings.Join(meta.Tags, ", "))
	}
	return b.String()
}

// buildSources produces one citation entry per successful result, in input
// order. The segment sequence is carried under both "segments" and the older
// "transcript" key for downstream consumer flexibility.
func buildSources(results []*model.TranscriptResult) []model.Source {
	sources := make([]model.Source, 0, len(results))
	for _, result := range results {
		meta := result.Metadata
		sources = append(sources, model.Source{
			PageContent: contextBlock(result),
			Metadata: map[string]interface{}{
				"type":        "youtube",
				"videoId":     meta.VideoID,
				"title":       meta.Title,
				"author":      meta.Author,
				"channelId":   meta.ChannelID,
				"url":         meta.URL,
				"thumbnail":   meta.Thumbnail,
				"duration":    meta.DurationSec,
				"publishedAt": meta.PublishedAt,
				"viewCount":   meta.ViewCount,
				"likeCount":   meta.LikeCount,
				"description": meta.Description,
				"tags":        meta.Tags,
				"segments":    result.Segments,
				"transcript":  result.Segments,
			},
		})
	}
	return sources
}

// effectiveQuery strips the literal URLs out of the message; an empty
// remainder falls back to the default instruction.
func effectiveQuery(message string) string {
	query := utils.StripVideoURLs(message)
	if query == "" {
		return defaultQuery
	}
	return query
}
