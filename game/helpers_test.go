package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/block"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/game"
	"github.com/plus3/stacker/persist"
	"github.com/plus3/stacker/physics/physicstest"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	scores     []int
	highScores []int
	lives      map[int]float64
	panels     []bool
	gameOver   int
	cues       []game.Cue
}

func newRecorder() *recorder {
	return &recorder{lives: make(map[int]float64)}
}

func (r *recorder) ScoreChanged(score int)         { r.scores = append(r.scores, score) }
func (r *recorder) HighScoreChanged(highScore int) { r.highScores = append(r.highScores, highScore) }
func (r *recorder) LifeIndicator(i int, f float64) { r.lives[i] = f }
func (r *recorder) PausePanel(visible bool)        { r.panels = append(r.panels, visible) }
func (r *recorder) GameOverPanel()                 { r.gameOver++ }
func (r *recorder) PlayCue(cue game.Cue)           { r.cues = append(r.cues, cue) }

type navigator struct {
	runs, quits int
}

func (n *navigator) NewRun() { n.runs++ }
func (n *navigator) Quit()   { n.quits++ }

type harness struct {
	session   *game.Session
	world     *physicstest.World
	presenter *recorder
	store     *persist.Memory
	input     game.Input
	events    []game.Event
}

func newHarness(t *testing.T, tweak func(*config.Config)) *harness {
	t.Helper()

	cfg := config.Default()
	cfg.Seed = 7
	if tweak != nil {
		tweak(&cfg)
	}

	h := &harness{
		world: physicstest.NewWorld(),
		store: persist.NewMemory(),
	}
	return h.start(t, cfg)
}

// start begins a fresh session on the same world and store.
func (h *harness) start(t *testing.T, cfg config.Config) *harness {
	t.Helper()
	h.presenter = newRecorder()
	h.events = nil
	s, err := game.NewSession(game.Options{
		Config:    cfg,
		Physics:   h.world,
		Input:     game.InputFunc(func() game.Input { return h.input }),
		Presenter: h.presenter,
		Store:     h.store,
		Observer:  func(e game.Event) { h.events = append(h.events, e) },
	})
	require.NoError(t, err)
	h.session = s
	return h
}

// spawn runs fixed ticks until a block is under control.
func (h *harness) spawn(t *testing.T) *block.Block {
	t.Helper()
	for range 3 {
		if b := h.session.Active(); b != nil {
			return b
		}
		h.session.FixedUpdate()
	}
	b := h.session.Active()
	require.NotNil(t, b, "no block spawned")
	return b
}

// landAt spawns a block, places it at y and makes it touch the ground.
func (h *harness) landAt(t *testing.T, y float64) *block.Block {
	t.Helper()
	b := h.spawn(t)
	h.world.SetPose(b.Body, mgl64.Vec3{0, y, 0}, 0)
	h.world.Collide(b.Body, 0)
	h.session.FixedUpdate()
	require.True(t, b.Landed)
	return b
}

// dropActive pushes the controlled block below the floor and runs a variable tick.
func (h *harness) dropActive(t *testing.T) *block.Block {
	t.Helper()
	b := h.spawn(t)
	b.Position = mgl64.Vec3{0, -h.session.Config().RenderOffset - 1, 0}
	h.session.Update(h.session.Config().FixedStep)
	return b
}

// wait runs fixed ticks covering at least seconds of world time.
func (h *harness) wait(seconds float64) {
	step := h.session.Config().FixedStep
	for elapsed := 0.0; elapsed <= seconds; elapsed += step {
		h.session.FixedUpdate()
	}
}

func (h *harness) kinds() []game.EventKind {
	out := make([]game.EventKind, len(h.events))
	for i, e := range h.events {
		out[i] = e.Kind
	}
	return out
}
