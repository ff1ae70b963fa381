package main

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/physics/physicstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys struct {
	held map[ebiten.Key]bool
	hit  map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: map[ebiten.Key]bool{}, hit: map[ebiten.Key]bool{}}
}

func (f *fakeKeys) Pressed(key ebiten.Key) bool     { return f.held[key] }
func (f *fakeKeys) JustPressed(key ebiten.Key) bool { return f.hit[key] }

func (f *fakeKeys) press(key ebiten.Key) {
	f.held[key] = true
	f.hit[key] = true
}

func (f *fakeKeys) nextFrame() {
	clear(f.hit)
}

func newTestSession(t *testing.T, src keySource) (*game.Session, *controls, *navigator) {
	t.Helper()
	nav := &navigator{}
	c := newControls(src)
	s, err := game.NewSession(game.Options{
		Config:    config.Default(),
		Physics:   physicstest.NewWorld(),
		Input:     c,
		Presenter: &hud{},
		Navigator: nav,
	})
	require.NoError(t, err)
	c.session = s
	return s, c, nav
}

func TestControlsSample(t *testing.T) {
	keys := newFakeKeys()
	c := newControls(keys)

	assert.Equal(t, game.Input{}, c.Sample())

	keys.held[ebiten.KeyArrowLeft] = true
	assert.Equal(t, -1.0, c.Sample().Axis)

	keys.held[ebiten.KeyD] = true
	assert.Equal(t, 0.0, c.Sample().Axis, "opposite directions cancel")

	keys.press(ebiten.KeyQ)
	keys.press(ebiten.KeyArrowDown)
	in := c.Sample()
	assert.True(t, in.RotateLeft)
	assert.True(t, in.RotateRight)

	keys.nextFrame()
	in = c.Sample()
	assert.False(t, in.RotateLeft, "rotation fires once per press")
	assert.False(t, in.RotateRight)
}

func TestControlsPauseToggle(t *testing.T) {
	keys := newFakeKeys()
	s, c, _ := newTestSession(t, keys)
	step := s.Config().FixedStep

	keys.press(ebiten.KeyEscape)
	c.menu()
	s.Advance(step)
	require.Equal(t, game.Paused, s.State.Status)

	keys.nextFrame()
	keys.press(ebiten.KeyEscape)
	c.menu()
	s.Advance(step)
	assert.Equal(t, game.Running, s.State.Status, "the resuming press does not pause again")

	keys.nextFrame()
	c.menu()
	s.Advance(step)
	assert.Equal(t, game.Running, s.State.Status)
}

func TestControlsMenu(t *testing.T) {
	keys := newFakeKeys()
	_, c, nav := newTestSession(t, keys)

	keys.press(ebiten.KeyN)
	c.menu()
	assert.True(t, nav.again)
	assert.False(t, nav.quit)

	keys.nextFrame()
	keys.press(ebiten.KeyX)
	c.menu()
	assert.True(t, nav.quit)
}

func TestStatusLine(t *testing.T) {
	h := &hud{}
	h.ScoreChanged(12)
	h.HighScoreChanged(30)
	h.LifeIndicator(0, 1)
	h.LifeIndicator(1, 1)
	h.LifeIndicator(2, 0)

	line := statusLine(game.Snapshot{MaxLives: 3, FallSpeed: 4}, h)
	assert.Equal(t, "Score: 12   Highest: 30   Lives: ##.   Speed: 4", line)
}

func TestOverlayAverage(t *testing.T) {
	o := newOverlay(4)
	start := o.last
	for i := 1; i <= 4; i++ {
		o.tick(start.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	assert.InDelta(t, 10, o.average(), 1e-4)
	assert.Equal(t, 0, o.index)
}

func TestProject(t *testing.T) {
	x, y := project(0, 20, 20, 1280, 720)
	assert.Equal(t, 640.0, x)
	assert.Equal(t, 360.0, y)

	x, y = project(1, 21, 20, 1280, 720)
	assert.Equal(t, 640.0+PixelsPerUnit, x)
	assert.Equal(t, 360.0-PixelsPerUnit, y)
}
