package http

import (
	"encoding/json"
	"net/http"

	"tube-chat/domain/dto"
	"tube-chat/domain/model"
	"tube-chat/usecase"

	"github.com/gin-gonic/gin"
)

// IChatHandler defines the interface for chat HTTP handlers
type IChatHandler interface {
	Chat(ctx *gin.Context)
}

// ChatHandler implements the chat HTTP handlers
type ChatHandler struct {
	agent usecase.ITranscriptAgent
}

// NewChatHandler creates a new chat handler instance
func NewChatHandler(agent usecase.ITranscriptAgent) IChatHandler {
	return &ChatHandler{agent: agent}
}

// Chat handles POST /api/chat. The response is an SSE stream: a sources event
// when any video resolved, response chunks, then a terminal end or error.
func (h *ChatHandler) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no") // disable nginx buffering

	events := h.agent.HandleMessage(ctx.Request.Context(), &req)
	for evt := range events {
		writeEvent(ctx, evt)
	}
}

func writeEvent(ctx *gin.Context, evt model.StreamEvent) {
	var payload any
	switch evt.Type {
	case model.EventSources:
		payload = gin.H{"sources": evt.Sources}
	case model.EventResponse:
		payload = gin.H{"chunk": evt.Chunk}
	case model.EventError:
		payload = gin.H{"error": evt.Error}
	default:
		payload = gin.H{}
	}
	data, _ := json.Marshal(payload)
	_, _ = ctx.Writer.Write([]byte("event: " + string(evt.Type) + "\n"))
	_, _ = ctx.Writer.Write([]byte("data: "))
	_, _ = ctx.Writer.Write(data)
	_, _ = ctx.Writer.Write([]byte("\n\n"))
	ctx.Writer.Flush()
}
