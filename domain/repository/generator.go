package repository

import (
	"context"

	"tube-chat/domain/dto"
)

// ITextGenerator is the opaque streaming text-generation capability consumed
// by the transcript agent. Implementations call emit once per chunk in arrival
// order and return after the stream completes or fails; chunk boundaries are
// the model's own and must not be re-buffered.
type ITextGenerator interface {
	GenerateStream(ctx context.Context, req *dto.GenerationRequest, emit func(chunk string)) error
}
