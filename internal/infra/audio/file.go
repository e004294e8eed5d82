package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".webm": true,
}

// FileRecorder skips capture and hands an existing audio file to the
// pipeline, for re-processing saved clips or testing without a microphone.
// The caller keeps ownership of the file.
type FileRecorder struct {
	path string
}

func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{path: path}
}

func (f *FileRecorder) Name() string {
	return "file"
}

func (f *FileRecorder) Record(_ context.Context, _ time.Duration) (string, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return "", fmt.Errorf("reading audio file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("audio path %s is a directory", f.path)
	}
	if !audioExtensions[filepath.Ext(f.path)] {
		return "", fmt.Errorf("unsupported audio file extension: %s", filepath.Ext(f.path))
	}
	return f.path, nil
}
