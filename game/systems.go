package game

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// PauseSystem turns a latched pause request into a transition to Paused.
type PauseSystem struct{}

func (PauseSystem) Execute(frame *Frame) {
	s := frame.Session
	if !s.pauseRequested {
		return
	}
	s.pauseRequested = false
	s.Pause()
}

// TimerSystem advances world time and fires the life-loss debounce and the
// difficulty ramp when their deadlines pass.
type TimerSystem struct{}

func (TimerSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.State.Status != Running {
		return
	}
	s.clock += frame.DeltaTime

	if s.lifeCooldown.Expired(s.clock) {
		s.lifeCooldown.Disarm()
	}

	for s.ramp.Expired(s.clock) {
		s.State.FallSpeed = min(s.State.FallSpeed+1, s.cfg.FallSpeedCap)
		s.emit(EventSpeedUp, nil)
		if s.State.FallSpeed >= s.cfg.FallSpeedCap {
			s.ramp.Disarm()
			break
		}
		s.ramp.Arm(s.ramp.At + s.cfg.FallSpeedIncrease)
	}
}

// SpawnSystem queues a new block above the camera whenever none is in flight.
type SpawnSystem struct{}

func (SpawnSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.State.Status != Running || s.State.BlockInFlight {
		return
	}
	s.State.BlockInFlight = true
	at := mgl64.Vec3{0, s.Camera.Position.Y() + s.cfg.SpawnOffset, 0}
	frame.Commands.Spawn(s.catalog.Random(s.rng), at)
}

// PhysicsSystem steps the world and lands the active block on its first contact.
type PhysicsSystem struct{}

func (PhysicsSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.State.Status != Running {
		return
	}
	for _, c := range s.world.Step(frame.DeltaTime) {
		b := s.active
		if b == nil || b.Landed || c.Body != b.Body {
			continue
		}
		s.land(b)
	}
}

// ControlSystem steers the active block and refreshes its ghost. The below-floor
// check runs before any movement.
type ControlSystem struct{}

func (ControlSystem) Execute(frame *Frame) {
	s := frame.Session
	b := s.active
	if s.State.Status != Running || b == nil || b.Landed {
		return
	}

	if b.BelowFloor(s.cfg.RenderOffset) {
		s.loseBlock(frame.Commands, b, false)
		return
	}

	b.Steer(s.controls, s.speeds(), frame.DeltaTime)
	s.world.SetPose(b.Body, b.Position, b.Rotation)
	b.UpdateGhost(s.world.WorldBoxes(b.Body), s.world, s.cfg.ProbeDistance)
}

// SettleSystem follows landed blocks as the stack shifts under them.
type SettleSystem struct{}

func (SettleSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.State.Status != Running {
		return
	}

	for _, b := range slices.Collect(s.Tower.All()) {
		b.Position, b.Rotation = s.world.Pose(b.Body)
		if b.Settle(s.cfg.RenderOffset) {
			s.retargetDrop(b)
			s.emit(EventToppled, b)
		}
		if b.BelowFloor(s.cfg.RenderOffset) {
			s.loseBlock(frame.Commands, b, true)
		}
	}
}

// CameraSystem advances the camera glide.
type CameraSystem struct{}

func (CameraSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.State.Status != Running {
		return
	}
	s.Camera.Advance(frame.DeltaTime)
}
