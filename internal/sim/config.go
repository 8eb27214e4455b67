package sim

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Broadphase / solver strategy tags. Opaque configuration: the world picks
// an implementation, unknown tags fall back to the default.
const (
	BroadphaseGrid  = "grid"
	BroadphaseNaive = "naive"

	SolverImpulse = "impulse"
)

// WorldConfig drives stepping. Mutable at any time; a change takes effect on
// the next Step, never retroactively.
type WorldConfig struct {
	Gravity    rl.Vector3
	Timestep   float32 // fixed, seconds
	Iterations int     // constraint solver rounds
	Broadphase string
	Solver     string
}

// DefaultWorldConfig mirrors the engine defaults: earth-ish gravity and a
// 60 Hz fixed step.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:    rl.Vector3{X: 0, Y: -9.82, Z: 0},
		Timestep:   1.0 / 60.0,
		Iterations: 10,
		Broadphase: BroadphaseGrid,
		Solver:     SolverImpulse,
	}
}

// Validate checks the config invariants.
func (c WorldConfig) Validate() error {
	if c.Timestep <= 0 {
		return fmt.Errorf("timestep must be > 0, got %v", c.Timestep)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", c.Iterations)
	}
	return nil
}
