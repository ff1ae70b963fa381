// Package physicstest provides a scriptable physics.Provider for tests.
// Nothing moves unless a test moves it; collisions and cast results are queued by hand.
package physicstest

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/physics"
)

// Body is the fake's record of one created body.
type Body struct {
	Position   mgl64.Vec3
	Rotation   float64
	Boxes      []physics.Box
	Category   physics.Category
	Controlled bool
	Released   int
}

// Cast is one recorded BoxCastDown call.
type Cast struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	MaxDistance float64
	Mask        physics.Category
}

// World implements physics.Provider.
type World struct {
	Bodies    map[physics.BodyID]*Body
	Destroyed []physics.BodyID
	Casts     []Cast
	Steps     int

	// CastResults are consumed in order by BoxCastDown; a nil entry is a miss.
	// Once exhausted every cast misses.
	CastResults []*physics.Hit

	nextID  physics.BodyID
	pending []physics.Collision
}

var _ physics.Provider = (*World)(nil)

func NewWorld() *World {
	return &World{Bodies: make(map[physics.BodyID]*Body)}
}

// Collide queues a collision-enter to be returned by the next Step.
func (w *World) Collide(body, other physics.BodyID) {
	w.pending = append(w.pending, physics.Collision{Body: body, Other: other})
}

// QueueCasts appends scripted cast distances; negative values are misses.
func (w *World) QueueCasts(distances ...float64) {
	for _, d := range distances {
		if d < 0 {
			w.CastResults = append(w.CastResults, nil)
			continue
		}
		w.CastResults = append(w.CastResults, &physics.Hit{Distance: d, Category: physics.CategoryFloor})
	}
}

// Move shifts a body, standing in for gravity or a collapsing stack.
func (w *World) Move(id physics.BodyID, delta mgl64.Vec3) {
	if b, ok := w.Bodies[id]; ok {
		b.Position = b.Position.Add(delta)
	}
}

func (w *World) CreateBody(def physics.BodyDef) physics.BodyID {
	w.nextID++
	w.Bodies[w.nextID] = &Body{
		Position:   def.Position,
		Rotation:   def.Rotation,
		Boxes:      slices.Clone(def.Boxes),
		Category:   def.Category,
		Controlled: def.Controlled,
	}
	return w.nextID
}

func (w *World) DestroyBody(id physics.BodyID) {
	if _, ok := w.Bodies[id]; !ok {
		return
	}
	delete(w.Bodies, id)
	w.Destroyed = append(w.Destroyed, id)
}

func (w *World) Pose(id physics.BodyID) (mgl64.Vec3, float64) {
	b, ok := w.Bodies[id]
	if !ok {
		return mgl64.Vec3{}, 0
	}
	return b.Position, b.Rotation
}

func (w *World) SetPose(id physics.BodyID, position mgl64.Vec3, rotation float64) {
	if b, ok := w.Bodies[id]; ok {
		b.Position = position
		b.Rotation = rotation
	}
}

func (w *World) WorldBoxes(id physics.BodyID) []physics.Box {
	b, ok := w.Bodies[id]
	if !ok {
		return nil
	}
	out := make([]physics.Box, len(b.Boxes))
	for i, box := range b.Boxes {
		out[i] = physics.Box{
			Offset:      physics.ToWorld(b.Position, b.Rotation, box.Offset),
			HalfExtents: box.HalfExtents,
		}
	}
	return out
}

func (w *World) Release(id physics.BodyID, category physics.Category) {
	if b, ok := w.Bodies[id]; ok {
		b.Controlled = false
		b.Category = category
		b.Released++
	}
}

func (w *World) BoxCastDown(center, halfExtents mgl64.Vec3, maxDistance float64, mask physics.Category) (physics.Hit, bool) {
	w.Casts = append(w.Casts, Cast{Center: center, HalfExtents: halfExtents, MaxDistance: maxDistance, Mask: mask})
	if len(w.CastResults) == 0 {
		return physics.Hit{}, false
	}
	next := w.CastResults[0]
	w.CastResults = w.CastResults[1:]
	if next == nil || next.Distance > maxDistance || next.Category&mask == 0 {
		return physics.Hit{}, false
	}
	return *next, true
}

func (w *World) Step(dt float64) []physics.Collision {
	w.Steps++
	out := w.pending
	w.pending = nil
	return out
}
