package studio

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

// SimulationState is the run state of the stepped loop.
// Transitions: idle -> running -> (paused <-> running) -> reset (idle,
// currentTime back to 0, bodies restored to last-committed transforms).
type SimulationState struct {
	Running     bool
	Paused      bool
	CurrentTime float32
	TimeStep    float32
	TotalSteps  int
	// Error is set when a step failed (non-finite transform) and the
	// simulation auto-paused. Cleared on reset.
	Error string
}

// VisualConfig is UI-local display state. It rides along in exported scenes
// as a convenience but is not part of the physical scene.
type VisualConfig struct {
	ShowDebug     bool
	EnableShadows bool
	ShowGizmos    bool
	AutoRotate    bool
	Quality       string // "low", "medium", "high"
}

// DefaultVisualConfig returns the startup display settings.
func DefaultVisualConfig() VisualConfig {
	return VisualConfig{
		EnableShadows: true,
		ShowGizmos:    true,
		Quality:       "medium",
	}
}

// ObjectsSnapshot is the payload of the objects-changed event.
type ObjectsSnapshot struct {
	Bodies      []*sim.Body
	Constraints []*sim.Constraint
}

// BodyTransform is the payload of the per-step body update event.
type BodyTransform struct {
	ID       string
	Position rl.Vector3
	Rotation rl.Vector3
}

// CollisionEvent forwards a contact reported by the physics world.
// Advisory only: the orchestrator never alters the simulation based on it.
type CollisionEvent struct {
	BodyA string
	BodyB string
	Point rl.Vector3
}

// committedTransform is the reset target for one body.
type committedTransform struct {
	position        rl.Vector3
	rotation        rl.Vector3
	velocity        rl.Vector3
	angularVelocity rl.Vector3
}
