// Package cue plays short sine tones marking the recording window.
package cue

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

type Player struct {
	sampleRate int

	once sync.Once
	ctx  *oto.Context
	err  error
}

func NewPlayer(sampleRate int) *Player {
	return &Player{sampleRate: sampleRate}
}

// Beep synthesizes a sine tone and plays it, blocking until done. The oto
// context is created lazily on first use and kept for the process lifetime.
func (p *Player) Beep(freq float64, d time.Duration) error {
	p.once.Do(p.initContext)
	if p.err != nil {
		return p.err
	}

	pcm := sineWave(freq, d, p.sampleRate)

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}

func (p *Player) initContext() {
	op := &oto.NewContextOptions{
		SampleRate:   p.sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		p.err = fmt.Errorf("initializing audio output: %w", err)
		return
	}
	<-ready
	p.ctx = ctx
}

func sineWave(freq float64, d time.Duration, sampleRate int) []byte {
	n := int(float64(sampleRate) * d.Seconds())
	out := make([]byte, n*2)
	for i := 0; i < n; i++ {
		// Fade in/out over 5ms to avoid clicks.
		amp := 0.4
		fade := sampleRate / 200
		if fade > 0 {
			if i < fade {
				amp *= float64(i) / float64(fade)
			} else if n-i < fade {
				amp *= float64(n-i) / float64(fade)
			}
		}
		v := int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		out[i*2] = byte(v)
		out[i*2+1] = byte(v >> 8)
	}
	return out
}
