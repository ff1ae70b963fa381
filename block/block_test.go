package block_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/block"
	"github.com/plus3/stacker/physics"
	"github.com/plus3/stacker/physics/physicstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var speeds = block.Speeds{Fall: 5, Move: 5, Rotate: 3}

func TestSteer(t *testing.T) {
	tests := []struct {
		name     string
		controls block.Controls
		dt       float64
		position mgl64.Vec3
		rotation float64
	}{
		{"falls with no input", block.Controls{}, 0.5, mgl64.Vec3{0, 7.5, 0}, 0},
		{"full right", block.Controls{Axis: 1}, 0.2, mgl64.Vec3{1, 9, 0}, 0},
		{"half left", block.Controls{Axis: -0.5}, 0.4, mgl64.Vec3{-1, 8, 0}, 0},
		{"rotate left", block.Controls{RotateLeft: true}, 0, mgl64.Vec3{0, 10, 0}, 3},
		{"rotate right", block.Controls{RotateRight: true}, 0, mgl64.Vec3{0, 10, 0}, -3},
		{"both rotations cancel", block.Controls{RotateLeft: true, RotateRight: true}, 0, mgl64.Vec3{0, 10, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := block.New(1, 0, 1, mgl64.Vec3{0, 10, 0})
			b.Steer(tt.controls, speeds, tt.dt)
			assert.True(t, b.Position.ApproxEqualThreshold(tt.position, 1e-9), "got %v", b.Position)
			assert.InDelta(t, tt.rotation, b.Rotation, 1e-9)
		})
	}
}

func TestBelowFloor(t *testing.T) {
	b := block.New(1, 0, 1, mgl64.Vec3{0, -4.99, 0})
	assert.False(t, b.BelowFloor(5))

	b.Position = mgl64.Vec3{0, -5, 0}
	assert.True(t, b.BelowFloor(5), "threshold is inclusive")
}

func TestLandDropsGhostOnce(t *testing.T) {
	b := block.New(1, 2, 1, mgl64.Vec3{0, 10, 0})
	require.NotNil(t, b.Ghost)
	assert.Equal(t, b.Position, b.Ghost.Position)

	assert.True(t, b.Land())
	assert.True(t, b.Landed)
	assert.Nil(t, b.Ghost)

	assert.False(t, b.Land())
	assert.Nil(t, b.Ghost)

	b.PlaceGhost(3)
	assert.Nil(t, b.Ghost, "landed blocks never regain a ghost")
}

func TestSettle(t *testing.T) {
	b := block.New(1, 0, 1, mgl64.Vec3{0, 12, 0})
	b.Land()

	assert.False(t, b.Settle(5))
	assert.Equal(t, 12.0, b.Height)
	assert.Equal(t, 12.0, b.LandedHeight)

	b.Position = mgl64.Vec3{0, 8, 0}
	assert.False(t, b.Settle(5), "a drop within the render offset is tolerated")
	assert.Equal(t, 12.0, b.LandedHeight)

	b.Position = mgl64.Vec3{0, 6.5, 0}
	assert.True(t, b.Settle(5))
	assert.Equal(t, 6.5, b.LandedHeight)

	assert.False(t, b.Settle(5), "the same drop is reported once")
}

func TestPredictDropPicksShortest(t *testing.T) {
	world := physicstest.NewWorld()
	world.QueueCasts(12, 7, 20)

	boxes := []physics.Box{
		{Offset: mgl64.Vec3{-1, 20, 0}, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		{Offset: mgl64.Vec3{0, 20, 0}, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		{Offset: mgl64.Vec3{1, 21, 0}, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
	}

	drop, ok := block.PredictDrop(boxes, world, block.DefaultProbeDistance)
	require.True(t, ok)
	assert.Equal(t, 7.0, drop)

	require.Len(t, world.Casts, 3)
	for i, cast := range world.Casts {
		assert.Equal(t, boxes[i].Offset, cast.Center)
		assert.Equal(t, boxes[i].HalfExtents, cast.HalfExtents)
		assert.Equal(t, block.DefaultProbeDistance, cast.MaxDistance)
		assert.Equal(t, physics.CategoryFloor, cast.Mask)
	}
}

func TestUpdateGhost(t *testing.T) {
	boxes := []physics.Box{
		{Offset: mgl64.Vec3{0, 20, 0}, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		{Offset: mgl64.Vec3{1, 20, 0}, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
	}

	t.Run("lowers by the shortest hit", func(t *testing.T) {
		world := physicstest.NewWorld()
		world.QueueCasts(9, -1)

		b := block.New(1, 0, 1, mgl64.Vec3{0.5, 20, 0})
		b.Rotation = 90
		b.UpdateGhost(boxes, world, block.DefaultProbeDistance)

		assert.Equal(t, mgl64.Vec3{0.5, 11, 0}, b.Ghost.Position)
		assert.Equal(t, 90.0, b.Ghost.Rotation)
	})

	t.Run("miss keeps the previous placement", func(t *testing.T) {
		world := physicstest.NewWorld()
		world.QueueCasts(4, 4)

		b := block.New(1, 0, 1, mgl64.Vec3{0, 20, 0})
		b.UpdateGhost(boxes, world, block.DefaultProbeDistance)
		require.Equal(t, mgl64.Vec3{0, 16, 0}, b.Ghost.Position)

		b.Position = mgl64.Vec3{3, 18, 0}
		b.UpdateGhost(boxes, world, block.DefaultProbeDistance)
		assert.Equal(t, mgl64.Vec3{0, 16, 0}, b.Ghost.Position)
	})

	t.Run("hits beyond the probe distance are ignored", func(t *testing.T) {
		world := physicstest.NewWorld()
		world.QueueCasts(80, 60)

		_, ok := block.PredictDrop(boxes, world, block.DefaultProbeDistance)
		assert.False(t, ok)
	})
}
