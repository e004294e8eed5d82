package application

import "context"

// Transcriber converts a recorded audio file into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
