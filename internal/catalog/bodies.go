package catalog

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

// BodyTemplate is a parametrized preset for a single body. The template id
// seeds the instantiated body's id; the orchestrator appends a monotonic
// suffix to keep ids unique within the scene.
type BodyTemplate struct {
	ID          string
	Name        string
	Description string
	Categories  []string

	Shape    sim.Shape
	Size     rl.Vector3
	Mass     float32
	Material sim.Material
	Color    rl.Color
}

// Instantiate builds a fresh body from the template. Position is left at
// the origin; the caller places it.
func (t BodyTemplate) Instantiate(id string) *sim.Body {
	b := sim.NewBody(id, t.Shape)
	b.Size = t.Size
	b.Mass = t.Mass
	b.Material = t.Material
	b.Color = t.Color
	return b
}

// Bodies returns the built-in single-body presets.
func Bodies() []BodyTemplate {
	return []BodyTemplate{
		{
			ID: "sphere", Name: "Sphere", Description: "A solid ball",
			Categories: []string{"basic"},
			Shape:      sim.ShapeSphere, Size: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5},
			Mass:     1.0,
			Material: sim.Material{Friction: 0.3, Restitution: 0.5},
			Color:    rl.Orange,
		},
		{
			ID: "box", Name: "Box", Description: "A unit cube",
			Categories: []string{"basic"},
			Shape:      sim.ShapeBox, Size: rl.Vector3{X: 1, Y: 1, Z: 1},
			Mass:     1.0,
			Material: sim.Material{Friction: 0.4, Restitution: 0.3},
			Color:    rl.SkyBlue,
		},
		{
			ID: "cylinder", Name: "Cylinder", Description: "An upright drum",
			Categories: []string{"basic"},
			Shape:      sim.ShapeCylinder, Size: rl.Vector3{X: 0.5, Y: 1.5, Z: 0.5},
			Mass:     1.2,
			Material: sim.Material{Friction: 0.4, Restitution: 0.2},
			Color:    rl.Lime,
		},
		{
			ID: "ground", Name: "Ground Plane", Description: "A static floor",
			Categories: []string{"static"},
			Shape:      sim.ShapePlane, Size: rl.Vector3{X: 40, Y: 0, Z: 40},
			Mass:     0,
			Material: sim.Material{Friction: 0.6, Restitution: 0.2},
			Color:    rl.LightGray,
		},
		{
			ID: "heavy-sphere", Name: "Heavy Sphere", Description: "A dense wrecking ball",
			Categories: []string{"basic", "heavy"},
			Shape:      sim.ShapeSphere, Size: rl.Vector3{X: 0.7, Y: 0.7, Z: 0.7},
			Mass:     10.0,
			Material: sim.Material{Friction: 0.5, Restitution: 0.1},
			Color:    rl.DarkGray,
		},
		{
			ID: "bouncy-ball", Name: "Bouncy Ball", Description: "A nearly elastic rubber ball",
			Categories: []string{"basic", "bouncy"},
			Shape:      sim.ShapeSphere, Size: rl.Vector3{X: 0.35, Y: 0.35, Z: 0.35},
			Mass:     0.3,
			Material: sim.Material{Friction: 0.1, Restitution: 0.92},
			Color:    rl.Pink,
		},
		{
			ID: "plank", Name: "Plank", Description: "A long flat board",
			Categories: []string{"basic"},
			Shape:      sim.ShapeBox, Size: rl.Vector3{X: 4, Y: 0.25, Z: 1},
			Mass:     2.0,
			Material: sim.Material{Friction: 0.5, Restitution: 0.2},
			Color:    rl.Brown,
		},
	}
}
