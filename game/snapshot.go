package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/block"
	"github.com/plus3/stacker/physics"
	"github.com/plus3/stacker/shape"
)

// BlockView is a read-only copy of one block for drawing.
type BlockView struct {
	ID       block.ID
	Shape    shape.ShapeID
	Name     string
	Color    [3]uint8
	Landed   bool
	Position mgl64.Vec3
	Rotation float64
	// Cells are the sub-shapes in world space.
	Cells []physics.Box
}

// Snapshot is everything a frontend needs to draw one frame.
type Snapshot struct {
	Status    Status
	Lives     int
	MaxLives  int
	Score     int
	HighScore int
	FallSpeed float64

	Camera       mgl64.Vec3
	CameraOffset mgl64.Vec3

	// CurrentHighest is this run's best landing; RecordHeight is the all-time best.
	CurrentHighest float64
	RecordHeight   float64

	Blocks []BlockView
	Ghost  *BlockView
}

// Snapshot copies the drawable state. Landed blocks come first in landing order,
// then the active block.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Status:         s.State.Status,
		Lives:          s.State.Lives,
		MaxLives:       s.cfg.Lives,
		Score:          s.State.Score,
		HighScore:      s.State.HighScore,
		FallSpeed:      s.State.FallSpeed,
		Camera:         s.Camera.Position,
		CameraOffset:   s.Camera.Offset,
		CurrentHighest: s.State.CurrentHighestPoint,
		RecordHeight:   float64(s.State.HighScore),
		Blocks:         make([]BlockView, 0, s.Tower.Len()+1),
	}

	for b := range s.Tower.All() {
		snap.Blocks = append(snap.Blocks, s.blockView(b))
	}
	if b := s.active; b != nil {
		snap.Blocks = append(snap.Blocks, s.blockView(b))
		if b.Ghost != nil {
			ghost := s.ghostView(b)
			snap.Ghost = &ghost
		}
	}
	return snap
}

func (s *Session) blockView(b *block.Block) BlockView {
	v := BlockView{
		ID:       b.ID,
		Shape:    b.Shape,
		Landed:   b.Landed,
		Position: b.Position,
		Rotation: b.Rotation,
		Cells:    s.world.WorldBoxes(b.Body),
	}
	if t, err := s.catalog.Block(b.Shape); err == nil {
		v.Name = t.Name
		v.Color = t.Color
	}
	return v
}

// ghostView lays the ghost template out at the predicted pose. The ghost has no
// body, so its cells are mapped here.
func (s *Session) ghostView(b *block.Block) BlockView {
	g := b.Ghost
	v := BlockView{
		ID:       b.ID,
		Shape:    g.Shape,
		Position: g.Position,
		Rotation: g.Rotation,
	}
	t, err := s.catalog.Ghost(g.Shape)
	if err != nil {
		return v
	}
	v.Name = t.Name
	v.Color = t.Color
	v.Cells = make([]physics.Box, len(t.Cells))
	for i, cell := range t.Cells {
		v.Cells[i] = physics.Box{
			Offset:      physics.ToWorld(g.Position, g.Rotation, cell.Offset),
			HalfExtents: cell.HalfExtents,
		}
	}
	return v
}
