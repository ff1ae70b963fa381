package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/physics"
)

// PixelsPerUnit is the zoom of the play field.
const PixelsPerUnit = 18

var (
	backgroundColor = color.RGBA{24, 26, 33, 255}
	floorColor      = color.RGBA{90, 90, 100, 255}
	highestColor    = color.RGBA{240, 220, 120, 255}
	recordColor     = color.RGBA{230, 90, 90, 255}
	ghostColor      = color.RGBA{60, 60, 60, 60}
)

// hud keeps what the presenter was told; the renderer draws it every frame.
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
func (h *hud) PlayCue(game.Cue)               {}

func (h *hud) LifeIndicator(index int, fill float64) {
	for len(h.lives) <= index {
		h.lives = append(h.lives, 0)
	}
	h.lives[index] = fill
}

type renderer struct {
	pixel *ebiten.Image
}

func newRenderer() *renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &renderer{pixel: pixel}
}

// project maps world coordinates to screen pixels with the camera height at the
// vertical center.
func project(x, y, cameraY float64, w, h int) (float64, float64) {
	return float64(w)/2 + x*PixelsPerUnit, float64(h)/2 - (y-cameraY)*PixelsPerUnit
}

// cell draws one sub-box rotated by the body's rotation in degrees.
func (r *renderer) cell(screen *ebiten.Image, box physics.Box, rotation, cameraY float64, clr color.Color) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	sx, sy := project(box.Offset.X(), box.Offset.Y(), cameraY, w, h)
	bw := 2 * box.HalfExtents.X() * PixelsPerUnit
	bh := 2 * box.HalfExtents.Y() * PixelsPerUnit

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(bw-1, bh-1)
	opts.GeoM.Translate(-(bw-1)/2, -(bh-1)/2)
	// Screen y points down, so a counter-clockwise world rotation is negative here.
	opts.GeoM.Rotate(-rotation * math.Pi / 180)
	opts.GeoM.Translate(sx, sy)
	opts.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(r.pixel, opts)
}

func (r *renderer) line(screen *ebiten.Image, y, cameraY, half float64, clr color.Color) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	x0, sy := project(-half, y, cameraY, w, h)
	x1, _ := project(half, y, cameraY, w, h)
	vector.StrokeLine(screen, float32(x0), float32(sy), float32(x1), float32(sy), 1, clr, false)
}

func (r *renderer) draw(screen *ebiten.Image, snap game.Snapshot, hud *hud) {
	screen.Fill(backgroundColor)
	camY := snap.Camera.Y()

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	fx, fy := project(-4, -0.5, camY, w, h)
	vector.DrawFilledRect(screen, float32(fx), float32(fy), 8*PixelsPerUnit, 4, floorColor, false)

	if snap.CurrentHighest > 0 {
		r.line(screen, snap.CurrentHighest, camY, 6, highestColor)
	}
	if snap.RecordHeight > 0 {
		r.line(screen, snap.RecordHeight, camY, 6, recordColor)
	}

	if g := snap.Ghost; g != nil {
		for _, c := range g.Cells {
			r.cell(screen, c, g.Rotation, camY, ghostColor)
		}
	}
	for _, b := range snap.Blocks {
		clr := color.RGBA{b.Color[0], b.Color[1], b.Color[2], 255}
		for _, c := range b.Cells {
			r.cell(screen, c, b.Rotation, camY, clr)
		}
	}

	ebitenutil.DebugPrintAt(screen, statusLine(snap, hud), 8, 8)

	var banner string
	switch {
	case hud.over:
		banner = "GAME OVER   N new run   X quit"
	case hud.paused:
		banner = "PAUSED   Esc resume   N new run   X quit"
	default:
		ebitenutil.DebugPrintAt(screen, "Left/Right move   Q/E rotate   Esc pause   N new   X quit", 8, h-20)
	}
	if banner != "" {
		// The debug font is 6 pixels wide.
		ebitenutil.DebugPrintAt(screen, banner, (w-len(banner)*6)/2, h/2)
	}
}

func statusLine(snap game.Snapshot, hud *hud) string {
	lives := make([]string, 0, snap.MaxLives)
	for i := range snap.MaxLives {
		if i < len(hud.lives) && hud.lives[i] > 0 {
			lives = append(lives, "#")
		} else {
			lives = append(lives, ".")
		}
	}
	return fmt.Sprintf("Score: %d   Highest: %d   Lives: %s   Speed: %.0f",
		hud.score, hud.highScore, strings.Join(lives, ""), snap.FallSpeed)
}
