package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// solveConstraints runs the configured number of projection rounds over all
// constraints. Corrections are weighted by inverse mass, so static bodies
// are never displaced.
func (w *World) solveConstraints() {
	for i := 0; i < w.cfg.Iterations; i++ {
		for _, c := range w.constraints {
			a := w.bodies[c.BodyA]
			b := w.bodies[c.BodyB]
			if a == nil || b == nil {
				continue // unreachable: integrity is enforced at insert
			}
			switch c.Type {
			case ConstraintDistance:
				w.projectDistance(a, b, c.PivotA, c.PivotB, c.Distance)
			case ConstraintPoint:
				w.projectDistance(a, b, c.PivotA, c.PivotB, 0)
			case ConstraintHinge:
				w.projectDistance(a, b, c.PivotA, c.PivotB, 0)
				w.alignHingeAxis(a, b, c.HingeAxis())
			case ConstraintLock:
				w.projectDistance(a, b, c.PivotA, c.PivotB, 0)
				w.holdRelativeRotation(a, b, w.lockRef[c.ID])
			}
		}
	}
}

// projectDistance moves the two anchor points toward rest separation and
// removes relative radial velocity. rest = 0 snaps the anchors together.
func (w *World) projectDistance(a, b *Body, pivotA, pivotB rl.Vector3, rest float32) {
	wA, wB := a.InvMass(), b.InvMass()
	total := wA + wB
	if total == 0 {
		return
	}

	pA := a.AnchorWorld(pivotA)
	pB := b.AnchorWorld(pivotB)
	delta := rl.Vector3Subtract(pB, pA)
	dist := rl.Vector3Length(delta)
	if dist < 1e-6 {
		return // coincident anchors, direction undefined: degrade to no-op
	}

	normal := rl.Vector3Scale(delta, 1/dist)
	err := dist - rest

	corr := err / total
	a.Position = rl.Vector3Add(a.Position, rl.Vector3Scale(normal, corr*wA))
	b.Position = rl.Vector3Subtract(b.Position, rl.Vector3Scale(normal, corr*wB))

	// Kill the radial component of the relative velocity; tangential motion
	// (the pendulum swing) is untouched.
	relVel := rl.Vector3Subtract(b.Velocity, a.Velocity)
	vn := rl.Vector3DotProduct(relVel, normal)
	j := vn / total
	a.Velocity = rl.Vector3Add(a.Velocity, rl.Vector3Scale(normal, j*wA))
	b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(normal, j*wB))

	clampSmallVelocity(a)
	clampSmallVelocity(b)
}

// alignHingeAxis rotates both bodies so B's hinge axis matches A's, and
// damps angular velocity off the hinge axis.
func (w *World) alignHingeAxis(a, b *Body, axis rl.Vector3) {
	wA, wB := a.InvMass(), b.InvMass()
	total := wA + wB
	if total == 0 {
		return
	}

	axisA := rotatePoint(axis, a.Rotation)
	axisB := rotatePoint(axis, b.Rotation)
	misalign := rl.Vector3CrossProduct(axisB, axisA)
	// Small-angle correction in degrees, split by inverse mass.
	corr := rl.Vector3Scale(misalign, rl.Rad2deg*0.5)
	a.Rotation = rl.Vector3Subtract(a.Rotation, rl.Vector3Scale(corr, wA/total))
	b.Rotation = rl.Vector3Add(b.Rotation, rl.Vector3Scale(corr, wB/total))

	dampOffAxisSpin(a, axisA)
	dampOffAxisSpin(b, axisB)
}

func dampOffAxisSpin(b *Body, axis rl.Vector3) {
	if b.Static() {
		return
	}
	spin := rl.Vector3Scale(axis, rl.Vector3DotProduct(b.AngularVelocity, axis))
	off := rl.Vector3Subtract(b.AngularVelocity, spin)
	b.AngularVelocity = rl.Vector3Add(spin, rl.Vector3Scale(off, 0.5))
}

// holdRelativeRotation drives B's rotation back to the offset from A that
// was captured when the lock constraint was added.
func (w *World) holdRelativeRotation(a, b *Body, ref rl.Vector3) {
	wA, wB := a.InvMass(), b.InvMass()
	total := wA + wB
	if total == 0 {
		return
	}
	rel := rl.Vector3Subtract(b.Rotation, a.Rotation)
	err := rl.Vector3Subtract(rel, ref)
	a.Rotation = rl.Vector3Add(a.Rotation, rl.Vector3Scale(err, 0.5*wA/total))
	b.Rotation = rl.Vector3Subtract(b.Rotation, rl.Vector3Scale(err, 0.5*wB/total))

	// Lock also means no independent spin.
	if !a.Static() && !b.Static() {
		avg := rl.Vector3Scale(rl.Vector3Add(a.AngularVelocity, b.AngularVelocity), 0.5)
		a.AngularVelocity = avg
		b.AngularVelocity = avg
	}
}

func clampSmallVelocity(b *Body) {
	const threshold = 1e-5
	if b.Static() {
		return
	}
	if rl.Vector3Length(b.Velocity) < threshold {
		b.Velocity = rl.Vector3{}
	}
	if rl.Vector3Length(b.AngularVelocity) < threshold {
		b.AngularVelocity = rl.Vector3{}
	}
}
