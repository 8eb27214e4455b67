package sim

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastHit describes the nearest intersection of a ray with a body.
type RaycastHit struct {
	BodyID   string
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast tests the ray against every body and returns the closest hit.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if rl.Vector3Length(direction) < 1e-6 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	closest := RaycastHit{Distance: maxDistance}
	hit := false
	for _, id := range w.order {
		b := w.bodies[id]
		var h RaycastHit
		var ok bool
		if b.Shape == ShapeSphere {
			h, ok = raycastSphere(origin, direction, b.Position, b.Size.X, maxDistance)
		} else {
			h, ok = raycastOBB(origin, direction, b.OBB(), maxDistance)
		}
		if ok && h.Distance < closest.Distance {
			closest = h
			closest.BodyID = id
			hit = true
		}
	}
	return closest, hit
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	bHalf := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := bHalf*bHalf - c
	if discriminant < 0 {
		return RaycastHit{}, false
	}
	sq := float32(math.Sqrt(float64(discriminant)))
	t := -bHalf - sq
	if t < 0 {
		t = -bHalf + sq
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// raycastOBB transforms the ray into the box's local frame and runs the
// standard slab test.
func raycastOBB(origin, direction rl.Vector3, obb OBB, maxDistance float32) (RaycastHit, bool) {
	rel := rl.Vector3Subtract(origin, obb.Center)
	var localOrigin, localDir [3]float32
	for i := 0; i < 3; i++ {
		localOrigin[i] = rl.Vector3DotProduct(rel, obb.Axes[i])
		localDir[i] = rl.Vector3DotProduct(direction, obb.Axes[i])
	}
	half := [3]float32{obb.HalfSize.X, obb.HalfSize.Y, obb.HalfSize.Z}

	tmin := float32(-1e30)
	tmax := float32(1e30)
	hitAxis := 0
	hitSign := float32(1)

	for i := 0; i < 3; i++ {
		if absf(localDir[i]) < 1e-8 {
			if localOrigin[i] < -half[i] || localOrigin[i] > half[i] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-half[i] - localOrigin[i]) / localDir[i]
		t2 := (half[i] - localOrigin[i]) / localDir[i]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			hitAxis = i
			hitSign = sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Scale(obb.Axes[hitAxis], hitSign)
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
