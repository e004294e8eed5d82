package audio

import "time"

// Cue plays a short tone marking the start and end of a capture window.
// Playback failures are advisory; recorders log and continue.
type Cue interface {
	Beep(freq float64, d time.Duration) error
}
