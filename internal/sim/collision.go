package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// restitution averages the two materials (more realistic than max).
func restitution(a, b *Body) float32 {
	return (a.Material.Restitution + b.Material.Restitution) / 2
}

func friction(a, b *Body) float32 {
	return (a.Material.Friction + b.Material.Friction) / 2
}

// resolvePair detects and resolves a collision between two bodies: push-out
// split by inverse mass (statics never move), then a restitution impulse
// along the contact normal. Works for dynamic/dynamic and dynamic/static.
func (w *World) resolvePair(a, b *Body) {
	if a.Static() && b.Static() {
		return
	}

	sphereA := a.Shape == ShapeSphere
	sphereB := b.Shape == ShapeSphere

	switch {
	case sphereA && sphereB:
		w.resolveSphereSphere(a, b)
	case sphereA:
		w.resolveSphereBox(a, b)
	case sphereB:
		w.resolveSphereBox(b, a)
	default:
		w.resolveBoxBox(a, b)
	}
}

func (w *World) resolveSphereSphere(a, b *Body) {
	diff := rl.Vector3Subtract(a.Position, b.Position)
	dist := rl.Vector3Length(diff)
	minDist := a.Size.X + b.Size.X
	if dist >= minDist || dist < 0.0001 {
		return
	}

	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := minDist - dist
	contact := rl.Vector3Subtract(a.Position, rl.Vector3Scale(normal, a.Size.X))
	w.recordContact(a, b, contact)

	w.pushApart(a, b, normal, penetration)
	w.bounce(a, b, normal)
}

func (w *World) resolveSphereBox(sphere, box *Body) {
	obb := box.OBB()
	closest := obb.ClosestPoint(sphere.Position)

	diff := rl.Vector3Subtract(sphere.Position, closest)
	dist := rl.Vector3Length(diff)
	if dist >= sphere.Size.X || dist < 0.0001 {
		return
	}

	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := sphere.Size.X - dist
	w.recordContact(sphere, box, closest)

	w.pushApart(sphere, box, normal, penetration)
	w.bounce(sphere, box, normal)
}

func (w *World) resolveBoxBox(a, b *Body) {
	pushOut := a.OBB().Resolve(b.OBB())
	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}

	normal := rl.Vector3Scale(pushOut, 1/pushLen)
	contact := rl.Vector3Scale(rl.Vector3Add(a.Position, b.Position), 0.5)
	w.recordContact(a, b, contact)

	w.pushApart(a, b, normal, pushLen)
	w.bounce(a, b, normal)
}

// pushApart separates two bodies along the normal, split by inverse mass so
// the heavier body moves less and static bodies not at all.
func (w *World) pushApart(a, b *Body, normal rl.Vector3, penetration float32) {
	wA, wB := a.InvMass(), b.InvMass()
	total := wA + wB
	if total == 0 {
		return
	}
	a.Position = rl.Vector3Add(a.Position, rl.Vector3Scale(normal, penetration*wA/total))
	b.Position = rl.Vector3Subtract(b.Position, rl.Vector3Scale(normal, penetration*wB/total))
}

// bounce applies a restitution impulse when the bodies approach each other,
// then damps tangential velocity by friction. Resting contacts against a
// static body additionally settle: tiny residual velocities are zeroed to
// stop jitter.
func (w *World) bounce(a, b *Body, normal rl.Vector3) {
	wA, wB := a.InvMass(), b.InvMass()
	total := wA + wB
	if total == 0 {
		return
	}

	relVel := rl.Vector3Subtract(a.Velocity, b.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)
	if velAlongNormal > 0 {
		return // already separating
	}

	e := restitution(a, b)
	j := -(1 + e) * velAlongNormal / total
	impulse := rl.Vector3Scale(normal, j)
	a.Velocity = rl.Vector3Add(a.Velocity, rl.Vector3Scale(impulse, wA))
	b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(impulse, wB))

	mu := friction(a, b)
	hasStatic := a.Static() || b.Static()
	if hasStatic {
		mu *= 2
	}
	if mu > 0 {
		dampTangential(a, normal, mu)
		dampTangential(b, normal, mu)
		// Ground contact slows tumbling.
		if hasStatic && absf(normal.Y) > 0.5 {
			for _, body := range [2]*Body{a, b} {
				if body.Static() {
					continue
				}
				body.AngularVelocity.X *= 1 - mu*0.25
				body.AngularVelocity.Z *= 1 - mu*0.25
			}
		}
	}

	if hasStatic {
		for _, body := range [2]*Body{a, b} {
			if !body.Static() && rl.Vector3Length(body.Velocity) < 0.02 {
				body.Velocity = rl.Vector3{}
			}
		}
	}
}

// dampTangential scales down the velocity component perpendicular to the
// contact normal.
func dampTangential(b *Body, normal rl.Vector3, mu float32) {
	if b.Static() {
		return
	}
	vn := rl.Vector3Scale(normal, rl.Vector3DotProduct(b.Velocity, normal))
	vt := rl.Vector3Subtract(b.Velocity, vn)
	vt = rl.Vector3Scale(vt, 1-mu*0.2)
	b.Velocity = rl.Vector3Add(vn, vt)
}
