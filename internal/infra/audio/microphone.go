//go:build portaudio
// +build portaudio

package audio

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

// MicrophoneRecorder captures mono 16-bit PCM from the default input
// device and writes it to a temporary WAV file. Single attempt: a missing
// input device surfaces immediately.
type MicrophoneRecorder struct {
	sampleRate int
	cue        Cue
	logger     *slog.Logger
}

func NewMicrophoneRecorder(sampleRate int, cue Cue, logger *slog.Logger) *MicrophoneRecorder {
	return &MicrophoneRecorder{
		sampleRate: sampleRate,
		cue:        cue,
		logger:     logger,
	}
}

func (m *MicrophoneRecorder) Name() string {
	return "microphone"
}

func (m *MicrophoneRecorder) Record(ctx context.Context, duration time.Duration) (string, error) {
	if err := portaudio.Initialize(); err != nil {
		return "", fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	buffer := make([]int16, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return "", fmt.Errorf("opening input stream (no audio device?): %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return "", fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	m.beep(880, 120*time.Millisecond)
	m.logger.Info("microphone recording", "sample_rate", m.sampleRate, "duration", duration)

	// Zero or negative duration records until the user presses Enter.
	var stop chan struct{}
	if duration <= 0 {
		stop = make(chan struct{})
		fmt.Println("Recording... press Enter to stop.")
		go func() {
			bufio.NewReader(os.Stdin).ReadString('\n')
			close(stop)
		}()
	}

	wanted := int(float64(m.sampleRate) * duration.Seconds())
	var samples []int16
	if wanted > 0 {
		samples = make([]int16, 0, wanted)
	}

capture:
	for duration <= 0 || len(samples) < wanted {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-stop:
			break capture
		default:
		}

		if err := stream.Read(); err != nil {
			return "", fmt.Errorf("reading from stream: %w", err)
		}
		samples = append(samples, buffer...)
	}
	if duration > 0 {
		samples = samples[:wanted]
	}

	m.beep(440, 120*time.Millisecond)

	f, err := os.CreateTemp("", "voicenote-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer f.Close()

	if err := EncodeWAV(f, samples, m.sampleRate); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing wav: %w", err)
	}

	m.logger.Info("recording saved", "path", f.Name(), "samples", len(samples))
	return f.Name(), nil
}

func (m *MicrophoneRecorder) beep(freq float64, d time.Duration) {
	if m.cue == nil {
		return
	}
	if err := m.cue.Beep(freq, d); err != nil {
		m.logger.Warn("playing cue", "error", err)
	}
}
