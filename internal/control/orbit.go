// Package control is the interaction layer: orbit camera, pointer state
// machine and transform gizmo. It writes to the scene only through the
// studio's property-update path; rendering reads from it, never the
// other way.
package control

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera maintains a look-at target plus a spherical offset. Angles
// are in degrees; polar is measured from the +Y axis, so 90 looks at the
// horizon.
type OrbitCamera struct {
	Target  rl.Vector3
	Radius  float32
	Polar   float32
	Azimuth float32

	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32
	// Azimuth wraps freely unless both bounds are set.
	MinAzimuth float32
	MaxAzimuth float32

	Fovy            float32
	OrbitSpeed      float32 // degrees per pixel of pointer delta
	ZoomFactor      float32 // radius multiplier per wheel tick, > 1
	AutoRotateSpeed float32 // degrees per second
}

// NewOrbitCamera returns a camera looking down at the origin from a
// comfortable editing distance.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Target:          rl.Vector3{Y: 1},
		Radius:          14,
		Polar:           65,
		Azimuth:         -45,
		MinDistance:     2,
		MaxDistance:     60,
		MinPolar:        5,
		MaxPolar:        89,
		Fovy:            45,
		OrbitSpeed:      0.35,
		ZoomFactor:      1.1,
		AutoRotateSpeed: 10,
	}
}

// Position converts the spherical offset to a world position.
func (c *OrbitCamera) Position() rl.Vector3 {
	polar := float64(c.Polar) * rl.Deg2rad
	azimuth := float64(c.Azimuth) * rl.Deg2rad
	sinP := float32(math.Sin(polar))
	return rl.Vector3{
		X: c.Target.X + c.Radius*sinP*float32(math.Cos(azimuth)),
		Y: c.Target.Y + c.Radius*float32(math.Cos(polar)),
		Z: c.Target.Z + c.Radius*sinP*float32(math.Sin(azimuth)),
	}
}

// Camera builds the raylib camera for this frame.
func (c *OrbitCamera) Camera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// Orbit applies a pointer delta to azimuth and polar, then clamps.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	c.Azimuth += dx * c.OrbitSpeed
	c.Polar -= dy * c.OrbitSpeed
	c.clampAngles()
}

// Zoom multiplies the radius per wheel tick: negative wheel zooms out,
// positive zooms in. The result is re-clamped to the distance bounds.
func (c *OrbitCamera) Zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	c.Radius *= float32(math.Pow(float64(c.ZoomFactor), float64(-wheel)))
	c.clampRadius()
}

// Pan translates target (and with it the camera) parallel to the view
// plane. The offset is scaled by field of view and distance so a one-pixel
// drag covers the same fraction of the screen at any zoom level.
func (c *OrbitCamera) Pan(dx, dy float32, screenHeight float32) {
	if screenHeight <= 0 {
		return
	}
	forward := rl.Vector3Subtract(c.Target, c.Position())
	if rl.Vector3Length(forward) < 1e-6 {
		return
	}
	forward = rl.Vector3Normalize(forward)
	right := rl.Vector3CrossProduct(forward, rl.Vector3{Y: 1})
	if rl.Vector3Length(right) < 1e-6 {
		return
	}
	right = rl.Vector3Normalize(right)
	up := rl.Vector3CrossProduct(right, forward)

	worldPerPixel := 2 * c.Radius *
		float32(math.Tan(float64(c.Fovy)*rl.Deg2rad/2)) / screenHeight
	offset := rl.Vector3Add(
		rl.Vector3Scale(right, -dx*worldPerPixel),
		rl.Vector3Scale(up, dy*worldPerPixel),
	)
	c.Target = rl.Vector3Add(c.Target, offset)
}

// AutoRotate advances azimuth by the configured constant rate. The caller
// suspends this while a drag is active.
func (c *OrbitCamera) AutoRotate(dt float32) {
	c.Azimuth += c.AutoRotateSpeed * dt
	c.clampAngles()
}

func (c *OrbitCamera) clampAngles() {
	if c.Polar < c.MinPolar {
		c.Polar = c.MinPolar
	}
	if c.Polar > c.MaxPolar {
		c.Polar = c.MaxPolar
	}
	if c.MinAzimuth != 0 || c.MaxAzimuth != 0 {
		if c.Azimuth < c.MinAzimuth {
			c.Azimuth = c.MinAzimuth
		}
		if c.Azimuth > c.MaxAzimuth {
			c.Azimuth = c.MaxAzimuth
		}
	} else {
		// Unbounded: keep the angle in a sane numeric range.
		for c.Azimuth > 360 {
			c.Azimuth -= 360
		}
		for c.Azimuth < -360 {
			c.Azimuth += 360
		}
	}
}

func (c *OrbitCamera) clampRadius() {
	if c.Radius < c.MinDistance {
		c.Radius = c.MinDistance
	}
	if c.Radius > c.MaxDistance {
		c.Radius = c.MaxDistance
	}
}
