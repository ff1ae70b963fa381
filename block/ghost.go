package block

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/physics"
)

// DefaultProbeDistance bounds each ghost probe.
const DefaultProbeDistance = 50.0

// Caster is the slice of physics.Provider the ghost predictor needs.
type Caster interface {
	BoxCastDown(center, halfExtents mgl64.Vec3, maxDistance float64, mask physics.Category) (physics.Hit, bool)
}

// PredictDrop probes straight down from every sub-shape and returns the shortest
// distance to the floor category. The closest sub-shape is the first point of contact,
// so it governs where the whole piece rests. ok is false when nothing was hit.
func PredictDrop(boxes []physics.Box, caster Caster, maxDistance float64) (drop float64, ok bool) {
	drop = math.Inf(1)
	for _, box := range boxes {
		hit, found := caster.BoxCastDown(box.Offset, box.HalfExtents, maxDistance, physics.CategoryFloor)
		if !found || hit.Category&physics.CategoryFloor == 0 {
			continue
		}
		if hit.Distance < drop {
			drop = hit.Distance
			ok = true
		}
	}
	if !ok {
		return 0, false
	}
	return drop, true
}

// UpdateGhost re-predicts the landing spot. A miss leaves the ghost where it was.
func (b *Block) UpdateGhost(boxes []physics.Box, caster Caster, maxDistance float64) {
	if b.Ghost == nil {
		return
	}
	if drop, ok := PredictDrop(boxes, caster, maxDistance); ok {
		b.PlaceGhost(drop)
	}
}
