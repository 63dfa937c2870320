package http

import (
	"net/http"

	"tube-chat/domain/repository"
	"tube-chat/usecase"

	"github.com/gin-gonic/gin"
)

// ITranscriptHandler defines the interface for transcript HTTP handlers
type ITranscriptHandler interface {
	Extract(ctx *gin.Context)
	CacheStats(ctx *gin.Context)
	RateLimitStatus(ctx *gin.Context)
}

// TranscriptHandler implements the transcript HTTP handlers
type TranscriptHandler struct {
	extractor usecase.ITranscriptExtractor
	cache     repository.ITranscriptCache
	limiters  []repository.IRateLimiter
}

// NewTranscriptHandler creates a new transcript handler instance
func NewTranscriptHandler(extractor usecase.ITranscriptExtractor, cache repository.ITranscriptCache, limiters ...repository.IRateLimiter) ITranscriptHandler {
	return &TranscriptHandler{
		extractor: extractor,
		cache:     cache,
		limiters:  limiters,
	}
}

// Extract handles GET /api/transcript?url=...
func (h *TranscriptHandler) Extract(ctx *gin.Context) {
	url := ctx.Query("url")
	if url == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter url is required",
		})
		return
	}

	result := h.extractor.ExtractTranscript(ctx.Request.Context(), url)
	if !result.OK() {
		// The result shape is uniform; the status code distinguishes an
		// unusable URL from an upstream extraction failure.
		status := http.StatusUnprocessableEntity
		if result.Error == usecase.ErrInvalidURL {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{
			"success": false,
			"error":   result.Error,
			"data":    result,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// CacheStats handles GET /api/cache/stats
func (h *TranscriptHandler) CacheStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.cache.Stats(),
	})
}

// RateLimitStatus handles GET /api/ratelimit/status
func (h *TranscriptHandler) RateLimitStatus(ctx *gin.Context) {
	statuses := make([]repository.RateLimiterStatus, 0, len(h.limiters))
	for _, limiter := range h.limiters {
		statuses = append(statuses, limiter.Status())
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    statuses,
	})
}
