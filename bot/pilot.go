// Package bot steers the active block without a player, for headless runs and
// attract screens.
package bot

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/stacker/block"
	"github.com/plus3/stacker/game"
)

// Pilot is a game.InputSource that aims each new block at a random column near the
// tower axis and turns it to a random quarter turn.
type Pilot struct {
	// Spread is the half width of the band target columns are drawn from.
	Spread float64
	// Gain converts horizontal error into axis deflection.
	Gain float64

	session *game.Session
	rng     *rand.Rand

	current block.ID
	column  float64
	heading float64
}

// NewPilot returns a pilot seeded with seed. Attach it to the session it steers
// before the first Advance.
func NewPilot(seed uint64, spread float64) *Pilot {
	return &Pilot{
		Spread: spread,
		Gain:   2,
		rng:    rand.New(rand.NewPCG(seed, seed+1)),
	}
}

func (p *Pilot) Attach(s *game.Session) {
	p.session = s
}

func (p *Pilot) Sample() game.Input {
	if p.session == nil {
		return game.Input{}
	}
	b := p.session.Active()
	if b == nil {
		return game.Input{}
	}

	if b.ID != p.current {
		p.current = b.ID
		p.column = (p.rng.Float64()*2 - 1) * p.Spread
		p.heading = float64(p.rng.IntN(4)) * 90
	}

	in := game.Input{
		Axis: math.Max(-1, math.Min(1, (p.column-b.Position.X())*p.Gain)),
	}

	step := p.session.State.RotateSpeed
	switch diff := p.heading - b.Rotation; {
	case diff >= step:
		in.RotateLeft = true
	case diff <= -step:
		in.RotateRight = true
	}
	return in
}
