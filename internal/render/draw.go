package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
	"physstudio/internal/studio"
)

const groundEpsilon = 0.02

// Draw renders the synced primitives plus overlays. Call between
// BeginMode3D and EndMode3D, after Sync for the same body list.
func (s *Synchronizer) Draw(bodies []*sim.Body, contacts []sim.Contact, selectedID string, visual studio.VisualConfig) {
	rl.DrawGrid(40, 1)

	if visual.EnableShadows {
		for _, b := range bodies {
			if b.Static() {
				continue
			}
			s.drawBlobShadow(b)
		}
	}

	for _, b := range bodies {
		p, ok := s.primitives[b.ID]
		if !ok {
			continue
		}
		rl.DrawModel(p.model, rl.Vector3Zero(), 1.0, rl.White)
		if b.ID == selectedID {
			rl.DrawModelWires(p.model, rl.Vector3Zero(), 1.0, rl.Yellow)
		}
	}

	if visual.ShowDebug {
		s.drawDebug(bodies, contacts)
	}
}

// drawBlobShadow paints a cheap soft disc under a body instead of a real
// shadow map.
func (s *Synchronizer) drawBlobShadow(b *sim.Body) {
	radius := b.BoundingRadius()
	center := rl.Vector3{X: b.Position.X, Y: groundEpsilon, Z: b.Position.Z}

	// Fade with height so airborne bodies cast a weaker shadow.
	height := b.Position.Y
	if height < 0 {
		return
	}
	alpha := 0.35 - height*0.02
	if alpha <= 0 {
		return
	}
	rl.DrawCylinder(center, radius, radius, 0.01, 16, rl.Fade(rl.Black, alpha))
}

func (s *Synchronizer) drawDebug(bodies []*sim.Body, contacts []sim.Contact) {
	for _, b := range bodies {
		if b.Static() {
			continue
		}
		tip := rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, 0.25))
		rl.DrawLine3D(b.Position, tip, rl.Green)
		rl.DrawCubeWiresV(b.Position, b.Extents(), rl.Magenta)
	}
	for _, c := range contacts {
		rl.DrawSphere(c.Point, 0.06, rl.Red)
	}
}

// DrawConstraints renders constraint links as lines between anchor points.
func DrawConstraints(constraints []*sim.Constraint, lookup func(string) *sim.Body) {
	for _, c := range constraints {
		a := lookup(c.BodyA)
		b := lookup(c.BodyB)
		if a == nil || b == nil {
			continue
		}
		rl.DrawLine3D(a.AnchorWorld(c.PivotA), b.AnchorWorld(c.PivotB), rl.DarkGray)
	}
}
