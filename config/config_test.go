package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stacker/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, mgl64.Vec3{0, 10, -20}, cfg.CameraStart.Vec())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
lives: 5
fall_speed: 7
camera_start: [0, 12, -30]
physics:
  floor_width: 6
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Lives)
	assert.Equal(t, 7.0, cfg.FallSpeed)
	assert.Equal(t, config.Vec3{0, 12, -30}, cfg.CameraStart)
	assert.Equal(t, 6.0, cfg.Physics.FloorWidth)

	assert.Equal(t, 25.0, cfg.FallSpeedCap, "untouched keys keep their default")
	assert.Equal(t, 9.81, cfg.Physics.Gravity)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("lives: [oops"), 0o644))
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("lives: 0\nfall_speed_cap: 1\n"), 0o644))
		_, err := config.Load(path)
		assert.ErrorIs(t, err, config.ErrInvalid)
		assert.ErrorContains(t, err, "lives")
		assert.ErrorContains(t, err, "fall_speed_cap")
	})
}
