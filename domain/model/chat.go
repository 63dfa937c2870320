package model

// StreamEventType identifies one of the four frame kinds the agent emits.
type StreamEventType string

const (
	EventSources  StreamEventType = "sources"
	EventResponse StreamEventType = "response"
	EventEnd      StreamEventType = "end"
	EventError    StreamEventType = "error"
)

// Source is one citation entry emitted before any generated answer content.
type Source struct {
	PageContent string                 `json:"pageContent"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// StreamEvent is one frame of the agent's output stream. Exactly one of
// Sources, Chunk or Error is populated depending on Type; end carries nothing.
type StreamEvent struct {
	Type    StreamEventType `json:"type"`
	Sources []Source        `json:"sources,omitempty"`
	Chunk   string          `json:"chunk,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ChatMessage is one prior turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
