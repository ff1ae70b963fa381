// Package block models one spawned block: its pose while under player control, the
// ghost preview that shows where it will come to rest, and the height bookkeeping that
// follows it once it has joined the tower.
package block

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/physics"
	"github.com/plus3/stacker/shape"
)

// ID identifies a block within a session.
type ID uint64

// Ghost is the non-physical landing preview of an unlanded block.
type Ghost struct {
	Shape    shape.ShapeID
	Position mgl64.Vec3
	Rotation float64
}

// Controls is the player input sampled for one tick.
type Controls struct {
	Axis        float64 // horizontal, signed, in [-1, 1]
	RotateLeft  bool
	RotateRight bool
}

// Speeds are the session tunables that drive a controlled block.
type Speeds struct {
	Fall   float64 // world units per second
	Move   float64 // world units per second at full axis
	Rotate float64 // degrees per rotate signal
}

// Block is a spawned block.
type Block struct {
	ID    ID
	Shape shape.ShapeID
	Body  physics.BodyID

	Position mgl64.Vec3
	Rotation float64

	Landed       bool
	Height       float64
	LandedHeight float64
	latched      bool

	Ghost *Ghost
}

// New returns an unlanded block with its ghost parked on the spawn pose.
func New(id ID, shapeID shape.ShapeID, body physics.BodyID, position mgl64.Vec3) *Block {
	return &Block{
		ID:       id,
		Shape:    shapeID,
		Body:     body,
		Position: position,
		Ghost:    &Ghost{Shape: shapeID, Position: position},
	}
}

// Steer applies one tick of player control: a world-space translation and the discrete
// rotation signals.
func (b *Block) Steer(c Controls, s Speeds, dt float64) {
	movement := mgl64.Vec3{c.Axis * s.Move, -s.Fall, 0}
	b.Position = b.Position.Add(movement.Mul(dt))

	if c.RotateLeft {
		b.Rotation += s.Rotate
	}
	if c.RotateRight {
		b.Rotation -= s.Rotate
	}
}

// BelowFloor reports whether the block has dropped out of the visible area.
func (b *Block) BelowFloor(renderOffset float64) bool {
	return b.Position.Y() <= -renderOffset
}

// Land is the one-way transition out of player control. It returns false when the
// block had already landed.
func (b *Block) Land() bool {
	if b.Landed {
		return false
	}
	b.Landed = true
	b.Ghost = nil
	return true
}

// Settle refreshes the height of a landed block. It returns true when the block has
// sunk more than renderOffset below where it landed, re-basing LandedHeight so the
// same drop is reported once.
func (b *Block) Settle(renderOffset float64) bool {
	b.Height = math.Abs(b.Position.Y())

	if !b.latched {
		b.LandedHeight = b.Height
		b.latched = true
	}

	if b.Height < b.LandedHeight-renderOffset {
		b.LandedHeight = b.Height
		return true
	}
	return false
}

// PlaceGhost moves the ghost under the block, lowered by drop.
func (b *Block) PlaceGhost(drop float64) {
	if b.Ghost == nil {
		return
	}
	b.Ghost.Position = mgl64.Vec3{b.Position.X(), b.Position.Y() - drop, b.Position.Z()}
	b.Ghost.Rotation = b.Rotation
}
