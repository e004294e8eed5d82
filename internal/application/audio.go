package application

import (
	"context"
	"time"
)

// Recorder captures one audio clip and returns the path of the written
// file. A zero or negative duration means capture until the user stops it.
type Recorder interface {
	Record(ctx context.Context, duration time.Duration) (string, error)
	Name() string
}
