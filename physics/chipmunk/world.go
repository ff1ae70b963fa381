// Package chipmunk implements physics.Provider on top of the Chipmunk2D port.
// Blocks live in the XY plane; Z components of poses and extents are carried through
// untouched.
package chipmunk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"
	"github.com/plus3/stacker/config"
	"github.com/plus3/stacker/physics"
)

const blockCollisionType cp.CollisionType = 1

// castInset keeps edge probes off the exact corners of a neighbouring box.
const castInset = 0.02

// Options tunes the simulated world.
type Options struct {
	Gravity    float64 // downward acceleration, world units per second squared
	FloorWidth float64 // width of the pedestal the tower stands on
	Friction   float64
}

// DefaultOptions is the stock tuning for stacking unit cells.
func DefaultOptions() Options {
	return Options{
		Gravity:    9.81,
		FloorWidth: 8,
		Friction:   0.8,
	}
}

// OptionsFrom maps the physics section of a session config.
func OptionsFrom(c config.Physics) Options {
	return Options{
		Gravity:    c.Gravity,
		FloorWidth: c.FloorWidth,
		Friction:   c.Friction,
	}
}

type entry struct {
	id       physics.BodyID
	body     *cp.Body
	shapes   []*cp.Shape
	boxes    []physics.Box
	moment   float64
	category physics.Category
}

// World is a Chipmunk space plus the bookkeeping that maps it onto BodyIDs.
type World struct {
	space   *cp.Space
	opts    Options
	bodies  *intmap.Map[physics.BodyID, *entry]
	floorID physics.BodyID
	nextID  physics.BodyID
	began   []physics.Collision
}

var _ physics.Provider = (*World)(nil)

// NewWorld creates a space with a static pedestal whose top face sits at y = 0.
func NewWorld(opts Options) *World {
	w := &World{
		space:  cp.NewSpace(),
		opts:   opts,
		bodies: intmap.New[physics.BodyID, *entry](64),
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: -opts.Gravity})

	w.nextID++
	w.floorID = w.nextID
	static := w.space.StaticBody
	static.UserData = w.floorID

	half := opts.FloorWidth / 2
	floor := cp.NewBox2(static, cp.BB{L: -half, B: -1, R: half, T: 0}, 0)
	floor.SetFriction(opts.Friction)
	floor.SetFilter(filterFor(physics.CategoryFloor))
	w.space.AddShape(floor)
	w.bodies.Put(w.floorID, &entry{
		id:       w.floorID,
		body:     static,
		shapes:   []*cp.Shape{floor},
		category: physics.CategoryFloor,
	})

	handler := w.space.NewWildcardCollisionHandler(blockCollisionType)
	handler.BeginFunc = w.begin

	return w
}

// Floor returns the id of the static pedestal.
func (w *World) Floor() physics.BodyID {
	return w.floorID
}

func filterFor(category physics.Category) cp.ShapeFilter {
	return cp.NewShapeFilter(0, uint(category), ^uint(0))
}

func (w *World) begin(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	a, b := arb.Bodies()
	self, ok := a.UserData.(physics.BodyID)
	if !ok {
		return true
	}
	other, _ := b.UserData.(physics.BodyID)
	w.began = append(w.began, physics.Collision{Body: self, Other: other})
	return true
}

func (w *World) CreateBody(def physics.BodyDef) physics.BodyID {
	w.nextID++
	id := w.nextID

	mass := def.Mass
	if mass <= 0 {
		mass = float64(len(def.Boxes))
	}
	cellMass := mass / float64(max(len(def.Boxes), 1))

	var moment float64
	for _, box := range def.Boxes {
		width, height := box.HalfExtents.X()*2, box.HalfExtents.Y()*2
		offset := box.Offset.Vec2()
		// parallel axis theorem for off-centre cells
		moment += cp.MomentForBox(cellMass, width, height) + cellMass*offset.Dot(offset)
	}

	body := cp.NewBody(mass, moment)
	body.UserData = id
	w.space.AddBody(body)

	e := &entry{
		id:       id,
		body:     body,
		boxes:    def.Boxes,
		moment:   moment,
		category: def.Category,
	}
	for _, box := range def.Boxes {
		hx, hy := box.HalfExtents.X(), box.HalfExtents.Y()
		ox, oy := box.Offset.X(), box.Offset.Y()
		shape := cp.NewBox2(body, cp.BB{L: ox - hx, B: oy - hy, R: ox + hx, T: oy + hy}, 0)
		shape.SetFriction(w.opts.Friction)
		shape.SetCollisionType(blockCollisionType)
		shape.SetFilter(filterFor(def.Category))
		w.space.AddShape(shape)
		e.shapes = append(e.shapes, shape)
	}

	if def.Controlled {
		body.SetMoment(math.Inf(1))
		body.SetVelocityUpdateFunc(holdStill)
	}

	w.bodies.Put(id, e)
	w.SetPose(id, def.Position, def.Rotation)
	return id
}

// holdStill replaces gravity integration for controlled bodies.
func holdStill(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	body.SetVelocity(0, 0)
	body.SetAngularVelocity(0)
}

func (w *World) DestroyBody(id physics.BodyID) {
	e, ok := w.bodies.Get(id)
	if !ok || id == w.floorID {
		return
	}
	for _, shape := range e.shapes {
		w.space.RemoveShape(shape)
	}
	w.space.RemoveBody(e.body)
	w.bodies.Del(id)
}

func (w *World) Pose(id physics.BodyID) (mgl64.Vec3, float64) {
	e, ok := w.bodies.Get(id)
	if !ok {
		return mgl64.Vec3{}, 0
	}
	p := e.body.Position()
	return mgl64.Vec3{p.X, p.Y, 0}, mgl64.RadToDeg(e.body.Angle())
}

func (w *World) SetPose(id physics.BodyID, position mgl64.Vec3, rotation float64) {
	e, ok := w.bodies.Get(id)
	if !ok {
		return
	}
	e.body.SetPosition(cp.Vector{X: position.X(), Y: position.Y()})
	e.body.SetAngle(mgl64.DegToRad(rotation))
	e.body.SetVelocity(0, 0)
	e.body.SetAngularVelocity(0)
	e.body.Activate()
}

func (w *World) WorldBoxes(id physics.BodyID) []physics.Box {
	e, ok := w.bodies.Get(id)
	if !ok {
		return nil
	}
	position, rotation := w.Pose(id)
	out := make([]physics.Box, len(e.boxes))
	for i, box := range e.boxes {
		out[i] = physics.Box{
			Offset:      physics.ToWorld(position, rotation, box.Offset),
			HalfExtents: box.HalfExtents,
		}
	}
	return out
}

func (w *World) Release(id physics.BodyID, category physics.Category) {
	e, ok := w.bodies.Get(id)
	if !ok {
		return
	}
	e.body.SetVelocity(0, 0)
	e.body.SetAngularVelocity(0)
	e.body.SetMoment(e.moment)
	e.body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
	for _, shape := range e.shapes {
		shape.SetFilter(filterFor(category))
	}
	e.category = category
	e.body.Activate()
}

// BoxCastDown approximates a swept box with rays dropped from the leading (bottom)
// face: both inset corners and the centre.
func (w *World) BoxCastDown(center, halfExtents mgl64.Vec3, maxDistance float64, mask physics.Category) (physics.Hit, bool) {
	query := cp.NewShapeFilter(0, ^uint(0), uint(mask))
	bottom := center.Y() - halfExtents.Y()
	inset := max(halfExtents.X()-castInset, 0)

	best := physics.Hit{Distance: math.Inf(1)}
	found := false
	for _, x := range []float64{center.X() - inset, center.X(), center.X() + inset} {
		start := cp.Vector{X: x, Y: bottom}
		end := cp.Vector{X: x, Y: bottom - maxDistance}
		info := w.space.SegmentQueryFirst(start, end, 0, query)
		if info.Shape == nil {
			continue
		}
		distance := info.Alpha * maxDistance
		if distance >= best.Distance {
			continue
		}
		best.Distance = distance
		best.Category = w.categoryOf(info.Shape)
		found = true
	}
	return best, found
}

func (w *World) categoryOf(shape *cp.Shape) physics.Category {
	id, ok := shape.Body().UserData.(physics.BodyID)
	if !ok {
		return 0
	}
	e, ok := w.bodies.Get(id)
	if !ok {
		return 0
	}
	return e.category
}

func (w *World) Step(dt float64) []physics.Collision {
	w.began = w.began[:0]
	w.space.Step(dt)
	out := make([]physics.Collision, len(w.began))
	copy(out, w.began)
	return out
}

// BodyCount reports live bodies, the floor included.
func (w *World) BodyCount() int {
	return w.bodies.Len()
}
