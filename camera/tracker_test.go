package camera_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/camera"
	"github.com/stretchr/testify/assert"
)

var offset = mgl64.Vec3{0, 10, -20}

func TestGlideIsTimeBounded(t *testing.T) {
	tracker := camera.NewTracker(offset, 0.25)
	tracker.Retarget(8)

	tracker.Advance(0.125)
	assert.InDelta(t, 14, tracker.Position.Y(), 1e-9, "half way after half the duration")
	assert.True(t, tracker.Moving())

	tracker.Advance(0.2)
	assert.Equal(t, mgl64.Vec3{0, 18, -20}, tracker.Position)
	assert.False(t, tracker.Moving())
	assert.InDelta(t, 8, tracker.Reference(), 1e-9)
}

func TestGlideIgnoresFrameRate(t *testing.T) {
	for _, fps := range []float64{30, 60, 144} {
		t.Run(fmt.Sprintf("%v fps", fps), func(t *testing.T) {
			tracker := camera.NewTracker(offset, 0.25)
			tracker.Retarget(4)

			frames := 0
			for tracker.Moving() {
				tracker.Advance(1 / fps)
				frames++
			}

			assert.InDelta(t, 0.25*fps, float64(frames), 1.01)
			assert.Equal(t, mgl64.Vec3{0, 14, -20}, tracker.Position)
		})
	}
}

func TestRetargetSupersedes(t *testing.T) {
	tracker := camera.NewTracker(offset, 1)
	tracker.Retarget(10)
	tracker.Advance(0.5)
	assert.InDelta(t, 15, tracker.Position.Y(), 1e-9)

	tracker.Retarget(2)
	glide := tracker.Glide()
	assert.InDelta(t, 15, glide.Start.Y(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 12, -20}, glide.Target)
	assert.Zero(t, glide.Elapsed)

	tracker.Advance(1)
	assert.Equal(t, mgl64.Vec3{0, 12, -20}, tracker.Position)
}

func TestAdvanceWithoutGlide(t *testing.T) {
	tracker := camera.NewTracker(offset, 0.25)
	tracker.Advance(1)
	assert.Equal(t, offset, tracker.Position)
	assert.Zero(t, tracker.Reference())
}
