// Package physics defines the rigid-body services the simulation consumes.
// The game core never integrates motion itself; it mutates poses, flips bodies
// between controlled and free-falling, and reads back collisions and casts.
package physics

import "github.com/go-gl/mathgl/mgl64"

// BodyID identifies a body owned by a Provider.
type BodyID uint64

// Category is a collision category bitmask.
type Category uint

const (
	// CategoryFloor is the ground and every landed block. Ghost probes only see it.
	CategoryFloor Category = 1 << iota
	// CategoryActive is the block currently under player control.
	CategoryActive
)

// Box is one sub-shape of a body in body-local space.
type Box struct {
	Offset      mgl64.Vec3
	HalfExtents mgl64.Vec3
}

// BodyDef describes a body to create.
type BodyDef struct {
	Position mgl64.Vec3
	Rotation float64 // degrees around the forward axis
	Boxes    []Box
	Mass     float64
	Category Category
	// Controlled bodies ignore gravity and cannot be spun by contacts; their pose is
	// driven by SetPose until Release is called.
	Controlled bool
}

// Collision reports that Body touched Other for the first time.
type Collision struct {
	Body  BodyID
	Other BodyID
}

// Hit is the nearest result of a cast.
type Hit struct {
	Distance float64
	Category Category
}

// Provider is implemented by a physics backend.
type Provider interface {
	CreateBody(def BodyDef) BodyID
	DestroyBody(id BodyID)

	Pose(id BodyID) (position mgl64.Vec3, rotation float64)
	SetPose(id BodyID, position mgl64.Vec3, rotation float64)

	// WorldBoxes returns the body's sub-shapes in world space: Offset holds each
	// sub-shape's world centre.
	WorldBoxes(id BodyID) []Box

	// Release zeroes residual velocity, enables gravity and free rotation, and
	// moves the body to category.
	Release(id BodyID, category Category)

	// BoxCastDown sweeps an axis-aligned box straight down from center for at most
	// maxDistance against bodies in mask.
	BoxCastDown(center, halfExtents mgl64.Vec3, maxDistance float64, mask Category) (Hit, bool)

	// Step integrates dt seconds and returns the collisions that began during it.
	Step(dt float64) []Collision
}

// ToWorld maps a body-local offset through a pose.
func ToWorld(position mgl64.Vec3, rotation float64, offset mgl64.Vec3) mgl64.Vec3 {
	planar := mgl64.Rotate2D(mgl64.DegToRad(rotation)).Mul2x1(offset.Vec2())
	return position.Add(planar.Vec3(offset.Z()))
}
