package audio

import "github.com/gopxl/beep"

// NewTestPlayer returns a ready player that hands streams to play.
func NewTestPlayer(play func(...beep.Streamer)) *Player {
	return &Player{Volume: 1, ready: true, play: play}
}
