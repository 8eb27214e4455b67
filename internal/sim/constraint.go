package sim

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ConstraintType identifies how two bodies are linked.
type ConstraintType string

const (
	ConstraintDistance ConstraintType = "distance"
	ConstraintPoint    ConstraintType = "point"
	ConstraintLock     ConstraintType = "lock"
	ConstraintHinge    ConstraintType = "hinge"
)

// Constraint limits the relative motion of two bodies, referenced by id.
// Referential integrity is checked when the constraint is added to a world,
// never at step time.
type Constraint struct {
	ID     string
	Type   ConstraintType
	BodyA  string
	BodyB  string
	PivotA rl.Vector3 // local-frame attachment on A
	PivotB rl.Vector3 // local-frame attachment on B
	// Distance is the rest length for distance constraints.
	Distance float32
	// Axis is the hinge axis in A's local frame. Zero means Z.
	Axis rl.Vector3
}

// Clone returns a copy of the constraint.
func (c *Constraint) Clone() *Constraint {
	d := *c
	return &d
}

// Validate checks the constraint independent of any scene.
func (c *Constraint) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("constraint without id")
	}
	switch c.Type {
	case ConstraintDistance, ConstraintPoint, ConstraintLock, ConstraintHinge:
	default:
		return fmt.Errorf("constraint %s: unknown type %q", c.ID, c.Type)
	}
	if c.BodyA == "" || c.BodyB == "" {
		return fmt.Errorf("constraint %s: missing body reference", c.ID)
	}
	if c.BodyA == c.BodyB {
		return fmt.Errorf("constraint %s: links body %s to itself", c.ID, c.BodyA)
	}
	if c.Type == ConstraintDistance && c.Distance <= 0 {
		return fmt.Errorf("constraint %s: distance type requires a positive distance", c.ID)
	}
	return nil
}

// References reports whether the constraint links the given body.
func (c *Constraint) References(bodyID string) bool {
	return c.BodyA == bodyID || c.BodyB == bodyID
}

// HingeAxis returns the configured axis, defaulting to Z.
func (c *Constraint) HingeAxis() rl.Vector3 {
	if c.Axis.X == 0 && c.Axis.Y == 0 && c.Axis.Z == 0 {
		return rl.Vector3{X: 0, Y: 0, Z: 1}
	}
	return rl.Vector3Normalize(c.Axis)
}
