package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/stacker/game"
)

// hud keeps what the presenter was told; the view draws it every frame.
type hud struct {
	score     int
	highScore int
	lives     []float64
	paused    bool
	over      bool
}

func (h *hud) ScoreChanged(score int)         { h.score = score }
func (h *hud) HighScoreChanged(highScore int) { h.highScore = highScore }
func (h *hud) PausePanel(visible bool)        { h.paused = visible }
func (h *hud) GameOverPanel()                 { h.over = true }
func (h *hud) PlayCue(game.Cue)                {}

func (h *hud) LifeIndicator(index int, fill float64) {
	for len(h.lives) <= index {
		h.lives = append(h.lives, 0)
	}
	h.lives[index] = fill
}

var (
	styleHUD   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFloor = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGhost = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleLine  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBest  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// view maps world units onto terminal cells: one unit is two columns by one row,
// with the camera height on the middle row.
type view struct {
	screen tcell.Screen
	hud    *hud
}

func (v *view) project(x, y, cameraY float64) (col, row int) {
	w, h := v.screen.Size()
	col = w/2 + int(math.Round(x*2))
	row = h/2 - int(math.Round(y-cameraY))
	return col, row
}

func (v *view) put(col, row int, r rune, style tcell.Style) {
	w, h := v.screen.Size()
	if col < 0 || row < 1 || col >= w || row >= h {
		return
	}
	v.screen.SetContent(col, row, r, nil, style)
}

func (v *view) text(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(col+i, row, r, nil, style)
	}
}

func (v *view) hline(y, cameraY float64, half float64, r rune, style tcell.Style) {
	from, row := v.project(-half, y, cameraY)
	to, _ := v.project(half, y, cameraY)
	for col := from; col < to; col++ {
		v.put(col, row, r, style)
	}
}

func (v *view) draw(snap game.Snapshot) {
	v.screen.Clear()
	camY := snap.Camera.Y()

	v.hline(-0.5, camY, 4, '▀', styleFloor)
	if snap.CurrentHighest > 0 {
		v.hline(snap.CurrentHighest, camY, 6, '·', styleLine)
	}
	if snap.RecordHeight > 0 {
		v.hline(snap.RecordHeight, camY, 6, '-', styleBest)
	}

	if g := snap.Ghost; g != nil {
		for _, cell := range g.Cells {
			col, row := v.project(cell.Offset.X(), cell.Offset.Y(), camY)
			v.put(col, row, '░', styleGhost)
			v.put(col+1, row, '░', styleGhost)
		}
	}
	for _, b := range snap.Blocks {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(b.Color[0]), int32(b.Color[1]), int32(b.Color[2])))
		for _, cell := range b.Cells {
			col, row := v.project(cell.Offset.X(), cell.Offset.Y(), camY)
			v.put(col, row, '█', style)
			v.put(col+1, row, '█', style)
		}
	}

	hearts := make([]string, 0, snap.MaxLives)
	for i := range snap.MaxLives {
		if i < len(v.hud.lives) && v.hud.lives[i] > 0 {
			hearts = append(hearts, "♥")
		} else {
			hearts = append(hearts, "·")
		}
	}
	v.text(0, 0, fmt.Sprintf("Score: %d  Highest: %d  Lives: %s  Speed: %.0f",
		v.hud.score, v.hud.highScore, strings.Join(hearts, ""), snap.FallSpeed), styleHUD)

	w, h := v.screen.Size()
	switch {
	case v.hud.over:
		banner := "GAME OVER  [n] new run  [x] quit"
		v.text((w-len(banner))/2, h/2, banner, styleHUD.Reverse(true))
	case v.hud.paused:
		banner := "PAUSED  [p] resume  [n] new run  [x] quit"
		v.text((w-len(banner))/2, h/2, banner, styleHUD.Reverse(true))
	default:
		v.text(0, h-1, "←/→ move  q/e rotate  p pause  n new  x quit", styleFloor)
	}

	v.screen.Show()
}
