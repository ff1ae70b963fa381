// Package game runs one stacking session: it spawns blocks, steers the falling one,
// turns landings and losses into score and lives, and keeps the camera on the tower.
//
// A Session is the sole owner of its state. Frontends drive it with Advance and read it
// back through Snapshot; everything else flows out through the Presenter, Store,
// Navigator and Observer ports.
package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/block"
	"github.com/plus3/stacker/camera"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/physics"
	"github.com/plus3/stacker/shape"
	"github.com/plus3/stacker/tower"
)

// Options wires a session to its collaborators. Physics is required.
type Options struct {
	Config    config.Config
	Catalog   *shape.Catalog
	Physics   physics.Provider
	Input     InputSource
	Presenter Presenter
	Store     Store
	Navigator Navigator
	Observer  Observer
}

// Session is the simulation context of one run.
type Session struct {
	cfg       config.Config
	catalog   *shape.Catalog
	world     physics.Provider
	input     InputSource
	presenter Presenter
	store     Store
	navigator Navigator
	observer  Observer
	rng       *rand.Rand

	State  State
	Tower  *tower.Registry
	Camera *camera.Tracker

	active   *block.Block
	nextID   block.ID
	controls block.Controls

	clock          float64
	accumulator    float64
	pauseRequested bool
	lifeCooldown   Deadline
	ramp           Deadline

	frame *Scheduler
	fixed *Scheduler
}

// NewSession starts a run: full lives, score zero, camera at its start position.
func NewSession(opts Options) (*Session, error) {
	if opts.Physics == nil {
		return nil, errors.New("game: a physics provider is required")
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:       cfg,
		catalog:   opts.Catalog,
		world:     opts.Physics,
		input:     opts.Input,
		presenter: opts.Presenter,
		store:     opts.Store,
		navigator: opts.Navigator,
		observer:  opts.Observer,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		Tower:     tower.NewRegistry(),
		Camera:    camera.NewTracker(cfg.CameraStart.Vec(), cfg.CameraSmoothing),
	}
	if s.catalog == nil {
		s.catalog = shape.Tetrominoes(cfg.BlockEdge)
	}
	if s.input == nil {
		s.input = InputFunc(func() Input { return Input{} })
	}
	if s.presenter == nil {
		s.presenter = nopPresenter{}
	}
	if s.store == nil {
		s.store = mapStore{}
	}
	if s.navigator == nil {
		s.navigator = nopNavigator{}
	}

	s.State = State{
		Lives:       cfg.Lives,
		HighScore:   s.store.GetInt(HighScoreKey, 0),
		FallSpeed:   cfg.FallSpeed,
		RotateSpeed: cfg.RotateSpeed,
		MoveSpeed:   cfg.MoveSpeed,
		Status:      Running,
	}
	if s.State.FallSpeed < cfg.FallSpeedCap {
		s.ramp.Arm(cfg.FallSpeedIncrease)
	}

	s.fixed = NewScheduler(s)
	s.fixed.Register(&PauseSystem{})
	s.fixed.Register(&TimerSystem{})
	s.fixed.Register(&SpawnSystem{})
	s.fixed.Register(&PhysicsSystem{})

	s.frame = NewScheduler(s)
	s.frame.Register(&ControlSystem{})
	s.frame.Register(&SettleSystem{})
	s.frame.Register(&CameraSystem{})

	s.presenter.ScoreChanged(0)
	s.presenter.HighScoreChanged(s.State.HighScore)
	for i := range s.State.Lives {
		s.presenter.LifeIndicator(i, 1)
	}

	return s, nil
}

// Advance samples input, runs as many fixed ticks as dt covers, then one variable tick.
func (s *Session) Advance(dt float64) {
	in := s.input.Sample()
	s.controls = block.Controls{
		Axis:        in.Axis,
		RotateLeft:  in.RotateLeft,
		RotateRight: in.RotateRight,
	}
	if in.Pause {
		s.pauseRequested = true
	}

	if s.State.Status == Running {
		s.accumulator += dt
	}
	for s.accumulator >= s.cfg.FixedStep {
		s.accumulator -= s.cfg.FixedStep
		s.FixedUpdate()
	}
	s.Update(dt)
}

// Run advances the session on a ticker until ctx is cancelled, handing a snapshot to
// draw after every tick. draw may be nil.
func (s *Session) Run(ctx context.Context, interval time.Duration, draw func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Advance(dt)
			if draw != nil {
				draw(s.Snapshot())
			}
		}
	}
}

// FixedUpdate runs one fixed-rate tick: pause sampling, timers, spawning and physics.
func (s *Session) FixedUpdate() {
	s.fixed.Once(s.cfg.FixedStep)
}

// Update runs one variable-rate tick: control, ghost prediction, settling and camera.
func (s *Session) Update(dt float64) {
	s.frame.Once(dt)
}

// Pause freezes world time and shows the pause panel.
func (s *Session) Pause() {
	if s.State.Status != Running {
		return
	}
	s.State.Status = Paused
	s.presenter.PausePanel(true)
	s.emit(EventPaused, nil)
}

// Resume continues a paused run.
func (s *Session) Resume() {
	if s.State.Status != Paused {
		return
	}
	s.State.Status = Running
	s.pauseRequested = false
	s.presenter.PausePanel(false)
	s.emit(EventResumed, nil)
}

// NewGame asks the navigator for a fresh run.
func (s *Session) NewGame() {
	s.presenter.PlayCue(CueSelect)
	s.navigator.NewRun()
}

// Quit asks the navigator to leave the application.
func (s *Session) Quit() {
	s.presenter.PlayCue(CueSelect)
	s.navigator.Quit()
}

// Close destroys every body the session still owns in the physics world.
func (s *Session) Close() {
	for b := range s.Tower.All() {
		s.world.DestroyBody(b.Body)
	}
	if s.active != nil {
		s.world.DestroyBody(s.active.Body)
		s.active = nil
	}
	s.Tower = tower.NewRegistry()
}

// Active returns the block under player control, if any.
func (s *Session) Active() *block.Block {
	return s.active
}

// Clock is the world time in seconds. It stands still while paused or over.
func (s *Session) Clock() float64 {
	return s.clock
}

// Config returns the settings the session was started with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Catalog returns the shape catalog blocks are spawned from.
func (s *Session) Catalog() *shape.Catalog {
	return s.catalog
}

// Stats returns timing statistics for the fixed and variable cadences.
func (s *Session) Stats() (fixed, frame *SchedulerStats) {
	return s.fixed.GetStats(), s.frame.GetStats()
}

func (s *Session) speeds() block.Speeds {
	return block.Speeds{
		Fall:   s.State.FallSpeed,
		Move:   s.State.MoveSpeed,
		Rotate: s.State.RotateSpeed,
	}
}

func (s *Session) spawnBlock(id shape.ShapeID, position mgl64.Vec3) {
	template, err := s.catalog.Block(id)
	if err != nil {
		s.State.BlockInFlight = false
		return
	}

	boxes := make([]physics.Box, len(template.Cells))
	for i, cell := range template.Cells {
		boxes[i] = physics.Box{Offset: cell.Offset, HalfExtents: cell.HalfExtents}
	}

	body := s.world.CreateBody(physics.BodyDef{
		Position:   position,
		Boxes:      boxes,
		Category:   physics.CategoryActive,
		Controlled: true,
	})

	s.nextID++
	s.active = block.New(s.nextID, id, body, position)
	s.State.BlockInFlight = true
	s.emit(EventSpawned, s.active)
}

func (s *Session) destroyBlock(b *block.Block) {
	s.world.DestroyBody(b.Body)
	if s.active == b {
		s.active = nil
	}
}
