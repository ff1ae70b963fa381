// Package audio synthesizes the session's sound cues and plays them on the default
// output device.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/plus3/stacker/game"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

var cueNotes = map[game.Cue][]note{
	game.CueLand:     {{freq: 196, duration: 70 * time.Millisecond}},
	game.CueLifeLost: {{freq: 440, duration: 120 * time.Millisecond}, {freq: 330, duration: 120 * time.Millisecond}, {freq: 220, duration: 200 * time.Millisecond}},
	game.CueSelect:   {{freq: 880, duration: 50 * time.Millisecond}},
}

// Cue renders cue as a finite stream at volume (1 is full scale). Unknown cues
// and a zero volume render silence of zero length.
func Cue(cue game.Cue, volume float64) beep.Streamer {
	notes := cueNotes[cue]
	if len(notes) == 0 {
		return beep.Silence(0)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(SampleRate, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(SampleRate.N(n.duration), sine))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// Length is the number of samples Cue renders for cue.
func Length(cue game.Cue) int {
	total := 0
	for _, n := range cueNotes[cue] {
		total += SampleRate.N(n.duration)
	}
	return total
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
