package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/stacker/game"
)

// Player sends cues to the speaker. The zero value is silent until Init succeeds.
type Player struct {
	Volume float64

	ready bool
	play  func(...beep.Streamer)
}

// NewPlayer returns a player at full volume. Call Init before the first cue.
func NewPlayer() *Player {
	return &Player{Volume: 1, play: speaker.Play}
}

// Init opens the output device. Without a device the player stays silent; the
// error is returned so the caller can log it.
func (p *Player) Init() error {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	p.ready = true
	return nil
}

// Close releases the output device.
func (p *Player) Close() {
	if p.ready {
		speaker.Close()
		p.ready = false
	}
}

func (p *Player) PlayCue(cue game.Cue) {
	if !p.ready || p.play == nil {
		return
	}
	p.play(Cue(cue, p.Volume))
}

// Presenter forwards everything to the wrapped presenter and voices cues on the
// player as well.
type Presenter struct {
	game.Presenter
	Player *Player
}

func (p Presenter) PlayCue(cue game.Cue) {
	if p.Player != nil {
		p.Player.PlayCue(cue)
	}
	if p.Presenter != nil {
		p.Presenter.PlayCue(cue)
	}
}
