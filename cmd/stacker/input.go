package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/stacker/game"
)

// keySource is the slice of ebiten's input state the game reads.
type keySource interface {
	Pressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) JustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

func anyPressed(src keySource, list ...ebiten.Key) bool {
	for _, k := range list {
		if src.Pressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(src keySource, list ...ebiten.Key) bool {
	for _, k := range list {
		if src.JustPressed(k) {
			return true
		}
	}
	return false
}

// controls reads the keyboard for one session. Resuming is handled here
// rather than through Input, and the same key press must not pause again on the
// following tick.
type controls struct {
	src     keySource
	session *game.Session
	resumed bool
}

func newControls(src keySource) *controls {
	return &controls{src: src}
}

// Sample implements game.InputSource. Holding both directions cancels out.
func (c *controls) Sample() game.Input {
	var in game.Input
	if anyPressed(c.src, ebiten.KeyArrowLeft, ebiten.KeyA) {
		in.Axis--
	}
	if anyPressed(c.src, ebiten.KeyArrowRight, ebiten.KeyD) {
		in.Axis++
	}
	in.RotateLeft = anyJustPressed(c.src, ebiten.KeyQ, ebiten.KeyArrowUp)
	in.RotateRight = anyJustPressed(c.src, ebiten.KeyE, ebiten.KeyArrowDown)
	in.Pause = !c.resumed && anyJustPressed(c.src, ebiten.KeyEscape, ebiten.KeyP)
	c.resumed = false
	return in
}

// menu handles the keys that act outside the fixed tick: resuming, starting over
// and quitting.
func (c *controls) menu() {
	s := c.session
	if s == nil {
		return
	}
	switch {
	case anyJustPressed(c.src, ebiten.KeyX):
		s.Quit()
	case anyJustPressed(c.src, ebiten.KeyN):
		s.NewGame()
	case s.State.Status == game.Paused && anyJustPressed(c.src, ebiten.KeyEscape, ebiten.KeyP):
		s.Resume()
		c.resumed = true
	}
}
