package sim

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB is an oriented bounding box in world space. Every non-sphere shape
// collides through its OBB.
type OBB struct {
	Center   rl.Vector3
	HalfSize rl.Vector3    // half-extents along local axes
	Axes     [3]rl.Vector3 // rotated local X, Y, Z
}

// NewOBB builds an OBB from center, full size and euler rotation (degrees).
func NewOBB(center, size, rotation rl.Vector3) OBB {
	m := rotationMatrix(rotation)
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3{X: m.M0, Y: m.M1, Z: m.M2}),
			rl.Vector3Normalize(rl.Vector3{X: m.M4, Y: m.M5, Z: m.M6}),
			rl.Vector3Normalize(rl.Vector3{X: m.M8, Y: m.M9, Z: m.M10}),
		},
	}
}

func (o OBB) project(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// Intersects tests two OBBs with the separating axis theorem: 3 face
// normals each plus the 9 edge cross products.
func (a OBB) Intersects(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)

	test := func(axis rl.Vector3) bool {
		if rl.Vector3Length(axis) < 0.0001 {
			return true // parallel edges, skip
		}
		axis = rl.Vector3Normalize(axis)
		return absf(rl.Vector3DotProduct(t, axis)) <= a.project(axis)+b.project(axis)
	}

	for i := 0; i < 3; i++ {
		if !test(a.Axes[i]) || !test(b.Axes[i]) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])) {
				return false
			}
		}
	}
	return true
}

// Resolve returns the minimum translation vector pushing a out of b, or the
// zero vector when the boxes do not overlap.
func (a OBB) Resolve(b OBB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3Zero()
	}

	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv rl.Vector3

	test := func(axis rl.Vector3) {
		if rl.Vector3Length(axis) < 0.0001 {
			return
		}
		axis = rl.Vector3Normalize(axis)
		dist := rl.Vector3DotProduct(t, axis)
		penetration := a.project(axis) + b.project(axis) - absf(dist)
		if penetration < minPenetration {
			minPenetration = penetration
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
	}

	for i := 0; i < 3; i++ {
		test(a.Axes[i])
		test(b.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			test(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]))
		}
	}
	return mtv
}

// ClosestPoint returns the point on (or in) the box nearest to p.
func (o OBB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	local := rl.Vector3Subtract(p, o.Center)
	result := o.Center
	limits := [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z}
	for i := 0; i < 3; i++ {
		d := clampf(rl.Vector3DotProduct(local, o.Axes[i]), -limits[i], limits[i])
		result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[i], d))
	}
	return result
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
