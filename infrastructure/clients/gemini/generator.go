package gemini

import (
	"context"
	"fmt"
	"time"

	"tube-chat/domain/dto"
	"tube-chat/domain/repository"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

// Generator streams chat completions from Gemini. A token-bucket limiter
// guards the call path so bursts of chat turns stay inside the model quota.
type Generator struct {
	client *genai.Client
	model  string
	limit  *rate.Limiter
}

var _ repository.ITextGenerator = (*Generator)(nil)

// NewGenerator creates a streaming generator for the given model.
func NewGenerator(ctx context.Context, apiKey, modelName string, requestsPerMinute int) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = defaultModel
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &Generator{
		client: client,
		model:  modelName,
		limit:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}, nil
}

// GenerateStream drives one chat completion and calls emit once per chunk in
// arrival order, preserving the model's own chunk boundaries.
func (g *Generator) GenerateStream(ctx context.Context, req *dto.GenerationRequest, emit func(chunk string)) error {
	if err := g.limit.Wait(ctx); err != nil {
		return fmt.Errorf("generation rate limit wait aborted: %w", err)
	}

	gm := g.client.GenerativeModel(g.model)
	if req.SystemInstructions != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstructions)}}
	}

	session := gm.StartChat()
	for _, msg := range req.History {
		role := "user"
		if msg.Role == "assistant" || msg.Role == "model" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	stream := session.SendMessageStream(ctx, genai.Text(buildPrompt(req)))
	for {
		resp, err := stream.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("generation stream failed: %w", err)
		}
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok && text != "" {
					emit(string(text))
				}
			}
		}
	}
}

// Close releases the underlying client connection.
func (g *Generator) Close() error {
	return g.client.Close()
}

func buildPrompt(req *dto.GenerationRequest) string {
	return fmt.Sprintf(
		"Current time: %s\n\nVideo transcript context:\n%s\n\nUser question: %s",
		req.Timestamp.Format(time.RFC1123),
		req.Context,
		req.Query,
	)
}
