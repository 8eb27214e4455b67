package sim

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape identifies the collision/render geometry of a body.
type Shape string

const (
	ShapeSphere   Shape = "sphere"
	ShapeBox      Shape = "box"
	ShapeCylinder Shape = "cylinder"
	ShapePlane    Shape = "plane"
)

// planeThickness is the slab height used when a plane participates in
// collision. Planes are rendered flat but collide as thin static boxes.
const planeThickness = 0.2

// Material holds the surface response parameters of a body.
type Material struct {
	Friction    float32 // 0 = ice, 1 = stops immediately
	Restitution float32 // 0 = no bounce, 1 = perfect bounce
}

// Body is a rigid body in the simulation. Bodies are shared by the
// orchestrator, the physics world and (by id only) the render layer.
type Body struct {
	ID              string
	Shape           Shape
	Position        rl.Vector3
	Rotation        rl.Vector3 // euler degrees
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second
	Mass            float32    // 0 = static, never displaced by forces
	Size            rl.Vector3 // sphere: X=radius; cylinder: X=radius, Y=height; plane: X,Z extents
	Material        Material
	Color           rl.Color
}

// NewBody returns a dynamic unit body with sensible surface defaults.
func NewBody(id string, shape Shape) *Body {
	return &Body{
		ID:       id,
		Shape:    shape,
		Mass:     1.0,
		Size:     rl.Vector3{X: 1, Y: 1, Z: 1},
		Material: Material{Friction: 0.3, Restitution: 0.5},
		Color:    rl.SkyBlue,
	}
}

// Static reports whether the body is immovable. Planes are always static:
// a dynamic infinite plane has no meaningful inertia.
func (b *Body) Static() bool {
	return b.Mass <= 0 || b.Shape == ShapePlane
}

// InvMass returns 1/mass, or 0 for static bodies.
func (b *Body) InvMass() float32 {
	if b.Static() {
		return 0
	}
	return 1.0 / b.Mass
}

// Extents returns the full box extents used for OBB collision.
func (b *Body) Extents() rl.Vector3 {
	switch b.Shape {
	case ShapeSphere:
		d := b.Size.X * 2
		return rl.Vector3{X: d, Y: d, Z: d}
	case ShapeCylinder:
		d := b.Size.X * 2
		return rl.Vector3{X: d, Y: b.Size.Y, Z: d}
	case ShapePlane:
		return rl.Vector3{X: b.Size.X, Y: planeThickness, Z: b.Size.Z}
	default:
		return b.Size
	}
}

// BoundingRadius returns a sphere radius that encloses the body.
func (b *Body) BoundingRadius() float32 {
	if b.Shape == ShapeSphere {
		return b.Size.X
	}
	return rl.Vector3Length(b.Extents()) * 0.5
}

// OBB returns the body's oriented bounding box in world space.
func (b *Body) OBB() OBB {
	return NewOBB(b.Position, b.Extents(), b.Rotation)
}

// Clone returns a deep copy of the body.
func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// Finite reports whether every transform component is a finite number.
func (b *Body) Finite() bool {
	return finiteVec(b.Position) && finiteVec(b.Rotation) &&
		finiteVec(b.Velocity) && finiteVec(b.AngularVelocity)
}

// Validate checks the body against the scene invariants.
func (b *Body) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("body without id")
	}
	switch b.Shape {
	case ShapeSphere, ShapeBox, ShapeCylinder, ShapePlane:
	default:
		return fmt.Errorf("body %s: unknown shape %q", b.ID, b.Shape)
	}
	if b.Mass < 0 {
		return fmt.Errorf("body %s: negative mass %v", b.ID, b.Mass)
	}
	if b.Material.Friction < 0 || b.Material.Friction > 1 {
		return fmt.Errorf("body %s: friction %v outside [0,1]", b.ID, b.Material.Friction)
	}
	if b.Material.Restitution < 0 || b.Material.Restitution > 1 {
		return fmt.Errorf("body %s: restitution %v outside [0,1]", b.ID, b.Material.Restitution)
	}
	return nil
}

func finiteVec(v rl.Vector3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}

// rotationMatrix builds the engine's standard euler rotation (X, Y, Z order).
func rotationMatrix(rotation rl.Vector3) rl.Matrix {
	rx := rl.MatrixRotateX(rotation.X * rl.Deg2rad)
	ry := rl.MatrixRotateY(rotation.Y * rl.Deg2rad)
	rz := rl.MatrixRotateZ(rotation.Z * rl.Deg2rad)
	return rl.MatrixMultiply(rl.MatrixMultiply(rx, ry), rz)
}

// rotatePoint rotates a local-frame point by euler degrees.
func rotatePoint(p, rotation rl.Vector3) rl.Vector3 {
	if rotation.X == 0 && rotation.Y == 0 && rotation.Z == 0 {
		return p
	}
	return rl.Vector3Transform(p, rotationMatrix(rotation))
}

// AnchorWorld returns a body-local attachment point in world space.
func (b *Body) AnchorWorld(local rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(b.Position, rotatePoint(local, b.Rotation))
}
