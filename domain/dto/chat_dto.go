package dto

import (
	"time"

	"tube-chat/domain/model"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message            string              `json:"message" binding:"required"`
	History            []model.ChatMessage `json:"history"`
	SystemInstructions string              `json:"system_instructions"`
}

// GenerationRequest carries everything the text generator needs for one turn.
type GenerationRequest struct {
	Context            string
	History            []model.ChatMessage
	Query              string
	SystemInstructions string
	Timestamp          time.Time
}
