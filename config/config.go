// Package config loads the tunables of a stacking session.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config mirrors the scene settings of the game.
type Config struct {
	Lives             int     `yaml:"lives"`
	FallSpeed         float64 `yaml:"fall_speed"`
	FallSpeedCap      float64 `yaml:"fall_speed_cap"`
	FallSpeedIncrease float64 `yaml:"fall_speed_increase"` // seconds between ramps
	RotateSpeed       float64 `yaml:"rotate_speed"`        // degrees per signal
	MoveSpeed         float64 `yaml:"move_speed"`
	LifeLostDelay     float64 `yaml:"life_lost_delay"`
	SpawnOffset       float64 `yaml:"spawn_offset"`
	RenderOffset      float64 `yaml:"render_offset"`
	CameraSmoothing   float64 `yaml:"camera_smoothing"`
	CameraStart       Vec3    `yaml:"camera_start"`
	ProbeDistance     float64 `yaml:"probe_distance"`
	FixedStep         float64 `yaml:"fixed_step"`
	BlockEdge         float64 `yaml:"block_edge"`
	Seed              uint64  `yaml:"seed"`

	Physics Physics `yaml:"physics"`
}

// Physics tunes the rigid-body backend.
type Physics struct {
	Gravity    float64 `yaml:"gravity"`
	FloorWidth float64 `yaml:"floor_width"`
	Friction   float64 `yaml:"friction"`
}

// Vec3 is the YAML form of a vector: a three element sequence.
type Vec3 [3]float64

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// Default returns the stock tuning.
func Default() Config {
	return Config{
		Lives:             3,
		FallSpeed:         5,
		FallSpeedCap:      25,
		FallSpeedIncrease: 60,
		RotateSpeed:       3,
		MoveSpeed:         5,
		LifeLostDelay:     5,
		SpawnOffset:       25,
		RenderOffset:      5,
		CameraSmoothing:   0.25,
		CameraStart:       Vec3{0, 10, -20},
		ProbeDistance:     50,
		FixedStep:         0.02,
		BlockEdge:         1,
		Physics: Physics{
			Gravity:    9.81,
			FloorWidth: 8,
			Friction:   0.8,
		},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Lives > 0, "lives must be positive, got %d", c.Lives)
	check(c.FallSpeed > 0, "fall_speed must be positive, got %v", c.FallSpeed)
	check(c.FallSpeedCap >= c.FallSpeed, "fall_speed_cap %v below fall_speed %v", c.FallSpeedCap, c.FallSpeed)
	check(c.FallSpeedIncrease > 0, "fall_speed_increase must be positive, got %v", c.FallSpeedIncrease)
	check(c.MoveSpeed >= 0, "move_speed must not be negative, got %v", c.MoveSpeed)
	check(c.LifeLostDelay >= 0, "life_lost_delay must not be negative, got %v", c.LifeLostDelay)
	check(c.RenderOffset > 0, "render_offset must be positive, got %v", c.RenderOffset)
	check(c.CameraSmoothing >= 0, "camera_smoothing must not be negative, got %v", c.CameraSmoothing)
	check(c.ProbeDistance > 0, "probe_distance must be positive, got %v", c.ProbeDistance)
	check(c.FixedStep > 0, "fixed_step must be positive, got %v", c.FixedStep)
	check(c.BlockEdge > 0, "block_edge must be positive, got %v", c.BlockEdge)

	return errors.Join(errs...)
}
