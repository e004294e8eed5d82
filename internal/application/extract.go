package application

import (
	"context"

	"voicenote/internal/domain"
)

// Extractor turns a transcript into a structured note via an LLM.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (*domain.Note, error)
}
