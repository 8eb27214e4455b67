package catalog

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

// SystemTemplate is a complete, internally consistent scene preset. Body
// and constraint ids are unique within the template only; the orchestrator
// re-keys them on load to keep scene-wide ids unique.
type SystemTemplate struct {
	ID          string
	Name        string
	Description string
	Categories  []string

	Bodies      []*sim.Body
	Constraints []*sim.Constraint
	// World, when non-nil, overrides parts of the world config on load.
	World *sim.WorldConfig
}

// Instantiate returns deep copies of the template's bodies and constraints
// so a loaded scene never aliases catalog data.
func (t SystemTemplate) Instantiate() ([]*sim.Body, []*sim.Constraint) {
	bodies := make([]*sim.Body, len(t.Bodies))
	for i, b := range t.Bodies {
		bodies[i] = b.Clone()
	}
	constraints := make([]*sim.Constraint, len(t.Constraints))
	for i, c := range t.Constraints {
		constraints[i] = c.Clone()
	}
	return bodies, constraints
}

func groundBody() *sim.Body {
	g := sim.NewBody("ground", sim.ShapePlane)
	g.Mass = 0
	g.Size = rl.Vector3{X: 40, Z: 40}
	g.Material = sim.Material{Friction: 0.6, Restitution: 0.2}
	g.Color = rl.LightGray
	return g
}

// Systems returns the built-in composite presets.
func Systems() []SystemTemplate {
	return []SystemTemplate{
		pendulum(),
		dominoChain(),
		seesaw(),
		newtonsCradle(),
		tower(),
	}
}

func pendulum() SystemTemplate {
	anchor := sim.NewBody("anchor", sim.ShapeBox)
	anchor.Mass = 0
	anchor.Size = rl.Vector3{X: 0.4, Y: 0.4, Z: 0.4}
	anchor.Position = rl.Vector3{Y: 6}
	anchor.Color = rl.DarkGray

	bob := sim.NewBody("bob", sim.ShapeSphere)
	bob.Size = rl.Vector3{X: 0.45, Y: 0.45, Z: 0.45}
	bob.Mass = 2
	bob.Position = rl.Vector3{X: 2.5, Y: 6}
	bob.Material = sim.Material{Friction: 0.1, Restitution: 0.4}
	bob.Color = rl.Red

	return SystemTemplate{
		ID: "pendulum", Name: "Pendulum",
		Description: "A bob swinging from a fixed anchor on a rigid rod",
		Categories:  []string{"constraints", "classic"},
		Bodies:      []*sim.Body{groundBody(), anchor, bob},
		Constraints: []*sim.Constraint{{
			ID: "rod", Type: sim.ConstraintDistance,
			BodyA: "anchor", BodyB: "bob", Distance: 2.5,
		}},
	}
}

func dominoChain() SystemTemplate {
	bodies := []*sim.Body{groundBody()}
	const count = 8
	for i := 0; i < count; i++ {
		d := sim.NewBody(fmt.Sprintf("domino-%d", i), sim.ShapeBox)
		d.Size = rl.Vector3{X: 0.2, Y: 1.2, Z: 0.6}
		d.Mass = 0.5
		d.Position = rl.Vector3{X: float32(i) * 0.7, Y: 0.6}
		d.Material = sim.Material{Friction: 0.4, Restitution: 0.1}
		d.Color = rl.Beige
		bodies = append(bodies, d)
	}
	// Tip the first domino into the chain.
	bodies[1].Rotation = rl.Vector3{Z: 12}
	bodies[1].AngularVelocity = rl.Vector3{Z: 60}

	return SystemTemplate{
		ID: "dominoes", Name: "Domino Chain",
		Description: "A row of dominoes toppling in sequence",
		Categories:  []string{"collision", "classic"},
		Bodies:      bodies,
	}
}

func seesaw() SystemTemplate {
	pivot := sim.NewBody("pivot", sim.ShapeBox)
	pivot.Mass = 0
	pivot.Size = rl.Vector3{X: 0.4, Y: 1, Z: 1}
	pivot.Position = rl.Vector3{Y: 0.5}
	pivot.Color = rl.DarkGray

	plank := sim.NewBody("plank", sim.ShapeBox)
	plank.Size = rl.Vector3{X: 5, Y: 0.2, Z: 1}
	plank.Mass = 2
	plank.Position = rl.Vector3{Y: 1.1}
	plank.Material = sim.Material{Friction: 0.5, Restitution: 0.1}
	plank.Color = rl.Brown

	light := sim.NewBody("light-ball", sim.ShapeSphere)
	light.Size = rl.Vector3{X: 0.35, Y: 0.35, Z: 0.35}
	light.Mass = 0.5
	light.Position = rl.Vector3{X: -2.2, Y: 1.7}
	light.Color = rl.Yellow

	heavy := sim.NewBody("heavy-ball", sim.ShapeSphere)
	heavy.Size = rl.Vector3{X: 0.45, Y: 0.45, Z: 0.45}
	heavy.Mass = 3
	heavy.Position = rl.Vector3{X: 2.2, Y: 2.5}
	heavy.Color = rl.Maroon

	return SystemTemplate{
		ID: "seesaw", Name: "Seesaw",
		Description: "A hinged plank balancing a light and a heavy ball",
		Categories:  []string{"constraints"},
		Bodies:      []*sim.Body{groundBody(), pivot, plank, light, heavy},
		Constraints: []*sim.Constraint{{
			ID: "hinge", Type: sim.ConstraintHinge,
			BodyA: "pivot", BodyB: "plank",
			PivotA: rl.Vector3{Y: 0.6}, PivotB: rl.Vector3{},
			Axis: rl.Vector3{Z: 1},
		}},
	}
}

func newtonsCradle() SystemTemplate {
	frame := sim.NewBody("frame", sim.ShapeBox)
	frame.Mass = 0
	frame.Size = rl.Vector3{X: 4.5, Y: 0.2, Z: 0.2}
	frame.Position = rl.Vector3{Y: 6}
	frame.Color = rl.DarkGray

	bodies := []*sim.Body{groundBody(), frame}
	var constraints []*sim.Constraint

	const (
		count  = 5
		radius = 0.4
		drop   = 3.0
	)
	for i := 0; i < count; i++ {
		x := (float32(i) - float32(count-1)/2) * radius * 2
		ball := sim.NewBody(fmt.Sprintf("ball-%d", i), sim.ShapeSphere)
		ball.Size = rl.Vector3{X: radius, Y: radius, Z: radius}
		ball.Mass = 1
		ball.Position = rl.Vector3{X: x, Y: 6 - drop}
		ball.Material = sim.Material{Friction: 0.0, Restitution: 0.95}
		ball.Color = rl.Gray
		bodies = append(bodies, ball)
		constraints = append(constraints, &sim.Constraint{
			ID: fmt.Sprintf("wire-%d", i), Type: sim.ConstraintDistance,
			BodyA: "frame", BodyB: ball.ID,
			PivotA:   rl.Vector3{X: x},
			Distance: drop,
		})
	}
	// Raise the first ball to the side, keeping its wire taut.
	first := bodies[2]
	first.Position = rl.Vector3{
		X: first.Position.X - drop*0.5,
		Y: 6 - drop*0.866,
	}

	cfg := sim.DefaultWorldConfig()
	cfg.Iterations = 20 // stiffer wires for clean impulse transfer

	return SystemTemplate{
		ID: "cradle", Name: "Newton's Cradle",
		Description: "Five suspended balls trading momentum",
		Categories:  []string{"constraints", "collision", "classic"},
		Bodies:      bodies,
		Constraints: constraints,
		World:       &cfg,
	}
}

func tower() SystemTemplate {
	bodies := []*sim.Body{groundBody()}
	const levels = 6
	for i := 0; i < levels; i++ {
		b := sim.NewBody(fmt.Sprintf("block-%d", i), sim.ShapeBox)
		b.Size = rl.Vector3{X: 1, Y: 1, Z: 1}
		b.Mass = 1
		b.Position = rl.Vector3{Y: 0.5 + float32(i)*1.001}
		b.Material = sim.Material{Friction: 0.6, Restitution: 0.05}
		b.Color = rl.NewColor(uint8(90+25*i), 120, uint8(220-25*i), 255)
		bodies = append(bodies, b)
	}
	return SystemTemplate{
		ID: "tower", Name: "Tower",
		Description: "A stack of boxes waiting to be knocked over",
		Categories:  []string{"collision"},
		Bodies:      bodies,
	}
}
