package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/stacker/game"
)

// holdWindow is how long a horizontal key press keeps steering. Terminals report
// presses and repeats but never releases.
const holdWindow = 120 * time.Millisecond

// keyboard drains terminal events once per Advance. It runs on the session's
// goroutine, so it may call back into the session.
type keyboard struct {
	events  <-chan tcell.Event
	nav     *navigator
	session *game.Session

	axis      float64
	axisUntil time.Time
	now       func() time.Time
}

func newKeyboard(events <-chan tcell.Event, nav *navigator) *keyboard {
	return &keyboard{events: events, nav: nav, now: time.Now}
}

func (k *keyboard) Sample() game.Input {
	var in game.Input
drain:
	for {
		select {
		case ev := <-k.events:
			k.handle(ev, &in)
		default:
			break drain
		}
	}

	if k.now().Before(k.axisUntil) {
		in.Axis = k.axis
	}
	return in
}

func (k *keyboard) handle(ev tcell.Event, in *game.Input) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	switch key.Key() {
	case tcell.KeyLeft:
		k.steer(-1)
	case tcell.KeyRight:
		k.steer(1)
	case tcell.KeyUp:
		in.RotateLeft = true
	case tcell.KeyDown:
		in.RotateRight = true
	case tcell.KeyEscape:
		k.togglePause(in)
	case tcell.KeyCtrlC:
		k.quit()
	case tcell.KeyRune:
		switch key.Rune() {
		case 'a', 'h':
			k.steer(-1)
		case 'd', 'l':
			k.steer(1)
		case 'q':
			in.RotateLeft = true
		case 'e':
			in.RotateRight = true
		case 'p', ' ':
			k.togglePause(in)
		case 'n':
			if k.session != nil {
				k.session.NewGame()
			} else {
				k.nav.NewRun()
			}
		case 'x':
			k.quit()
		}
	}
}

func (k *keyboard) steer(axis float64) {
	k.axis = axis
	k.axisUntil = k.now().Add(holdWindow)
}

func (k *keyboard) togglePause(in *game.Input) {
	if k.session != nil && k.session.State.Status == game.Paused {
		k.session.Resume()
		return
	}
	in.Pause = true
}

func (k *keyboard) quit() {
	if k.session != nil {
		k.session.Quit()
		return
	}
	k.nav.Quit()
}
