// Package camera follows the top of the tower with a time-bounded linear glide.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Glide is an in-flight interpolation. Starting a new one overwrites the old.
type Glide struct {
	Start    mgl64.Vec3
	Target   mgl64.Vec3
	Elapsed  float64
	Duration float64
	Active   bool
}

// Tracker owns the camera position.
type Tracker struct {
	Position mgl64.Vec3
	// Offset is the camera's starting position; targets are expressed relative to it.
	Offset mgl64.Vec3
	// Smoothing is the glide duration in seconds.
	Smoothing float64

	glide Glide
}

// NewTracker places the camera at offset.
func NewTracker(offset mgl64.Vec3, smoothing float64) *Tracker {
	return &Tracker{
		Position:  offset,
		Offset:    offset,
		Smoothing: smoothing,
	}
}

// Reference is the world height the camera is currently framing.
func (t *Tracker) Reference() float64 {
	return t.Position.Y() - t.Offset.Y()
}

// Retarget glides the camera so that it frames height y.
func (t *Tracker) Retarget(y float64) {
	t.glide = Glide{
		Start:    t.Position,
		Target:   mgl64.Vec3{0, y, 0}.Add(t.Offset),
		Duration: t.Smoothing,
		Active:   true,
	}
}

// Glide exposes the current interpolation state.
func (t *Tracker) Glide() Glide {
	return t.glide
}

// Moving reports whether a glide is in progress.
func (t *Tracker) Moving() bool {
	return t.glide.Active
}

// Advance moves the camera dt seconds along the active glide.
func (t *Tracker) Advance(dt float64) {
	g := &t.glide
	if !g.Active {
		return
	}

	g.Elapsed += dt
	if g.Duration <= 0 || g.Elapsed >= g.Duration {
		t.Position = g.Target
		g.Active = false
		return
	}

	progress := g.Elapsed / g.Duration
	t.Position = g.Start.Add(g.Target.Sub(g.Start).Mul(progress))
}
