package sim

import (
	"errors"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newTestWorld() *World {
	return NewWorld(DefaultWorldConfig())
}

func TestAddBodyRejectsDuplicateID(t *testing.T) {
	w := newTestWorld()
	if err := w.AddBody(NewBody("a", ShapeSphere)); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := w.AddBody(NewBody("a", ShapeBox)); err == nil {
		t.Error("expected duplicate id to be rejected")
	}
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := newTestWorld()
	ground := NewBody("ground", ShapeBox)
	ground.Mass = 0
	ground.Position = rl.Vector3{Y: -1}
	if err := w.AddBody(ground); err != nil {
		t.Fatalf("add: %v", err)
	}

	for i := 0; i < 200; i++ {
		if err := w.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if ground.Position.Y != -1 || ground.Position.X != 0 || ground.Position.Z != 0 {
		t.Errorf("static body moved to %+v", ground.Position)
	}
	if rl.Vector3Length(ground.Velocity) != 0 {
		t.Errorf("static body gained velocity %+v", ground.Velocity)
	}
}

func TestDynamicBodyFallsUnderGravity(t *testing.T) {
	w := newTestWorld()
	ball := NewBody("ball", ShapeSphere)
	ball.Position = rl.Vector3{Y: 50}
	if err := w.AddBody(ball); err != nil {
		t.Fatalf("add: %v", err)
	}

	start := ball.Position.Y
	for i := 0; i < 60; i++ {
		if err := w.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if ball.Position.Y >= start {
		t.Errorf("body did not fall: y %v -> %v", start, ball.Position.Y)
	}
}

func TestDistanceConstraintHoldsLength(t *testing.T) {
	w := newTestWorld()

	anchor := NewBody("anchor", ShapeSphere)
	anchor.Mass = 0
	anchor.Position = rl.Vector3{Y: 10}
	bob := NewBody("bob", ShapeSphere)
	bob.Size.X = 0.3
	bob.Position = rl.Vector3{X: 2, Y: 10}

	if err := w.AddBody(anchor); err != nil {
		t.Fatalf("add anchor: %v", err)
	}
	if err := w.AddBody(bob); err != nil {
		t.Fatalf("add bob: %v", err)
	}

	const length = 2.0
	err := w.AddConstraint(&Constraint{
		ID: "rod", Type: ConstraintDistance,
		BodyA: "anchor", BodyB: "bob", Distance: length,
	})
	if err != nil {
		t.Fatalf("add constraint: %v", err)
	}

	for i := 0; i < 100; i++ {
		if err := w.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	sep := rl.Vector3Length(rl.Vector3Subtract(bob.Position, anchor.Position))
	if math.Abs(float64(sep-length)) > 0.01*length {
		t.Errorf("separation %v, want %v within 1%%", sep, length)
	}
	if anchor.Position.Y != 10 {
		t.Errorf("static anchor moved: %+v", anchor.Position)
	}
}

func TestPointConstraintSnapsAnchors(t *testing.T) {
	w := newTestWorld()
	a := NewBody("a", ShapeBox)
	a.Position = rl.Vector3{X: -1}
	b := NewBody("b", ShapeBox)
	b.Position = rl.Vector3{X: 4}
	if err := w.AddBody(a); err != nil {
		t.Fatal(err)
	}
	if err := w.AddBody(b); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultWorldConfig()
	cfg.Gravity = rl.Vector3{}
	w.SetConfig(cfg)

	err := w.AddConstraint(&Constraint{
		ID: "joint", Type: ConstraintPoint,
		BodyA: "a", BodyB: "b",
		PivotA: rl.Vector3{X: 0.5}, PivotB: rl.Vector3{X: -0.5},
	})
	if err != nil {
		t.Fatalf("add constraint: %v", err)
	}

	for i := 0; i < 50; i++ {
		if err := w.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	pA := a.AnchorWorld(rl.Vector3{X: 0.5})
	pB := b.AnchorWorld(rl.Vector3{X: -0.5})
	if gap := rl.Vector3Length(rl.Vector3Subtract(pA, pB)); gap > 0.05 {
		t.Errorf("anchors still %v apart", gap)
	}
}

func TestConstraintRejectsDanglingBody(t *testing.T) {
	w := newTestWorld()
	if err := w.AddBody(NewBody("a", ShapeSphere)); err != nil {
		t.Fatal(err)
	}
	err := w.AddConstraint(&Constraint{
		ID: "c", Type: ConstraintPoint, BodyA: "a", BodyB: "ghost",
	})
	if err == nil {
		t.Error("expected dangling reference to be rejected")
	}
	if len(w.Constraints()) != 0 {
		t.Error("rejected constraint was stored")
	}
}

func TestRemoveBodyCascadesConstraints(t *testing.T) {
	w := newTestWorld()
	for _, id := range []string{"a", "b", "c"} {
		if err := w.AddBody(NewBody(id, ShapeSphere)); err != nil {
			t.Fatal(err)
		}
	}
	w.AddConstraint(&Constraint{ID: "ab", Type: ConstraintPoint, BodyA: "a", BodyB: "b"})
	w.AddConstraint(&Constraint{ID: "bc", Type: ConstraintPoint, BodyA: "b", BodyB: "c"})
	w.AddConstraint(&Constraint{ID: "ac", Type: ConstraintPoint, BodyA: "a", BodyB: "c"})

	w.RemoveBody("b")

	remaining := w.Constraints()
	if len(remaining) != 1 || remaining[0].ID != "ac" {
		t.Errorf("expected only ac to remain, got %d constraints", len(remaining))
	}
}

func TestStepReportsNonFiniteTransform(t *testing.T) {
	w := newTestWorld()
	b := NewBody("bad", ShapeSphere)
	if err := w.AddBody(b); err != nil {
		t.Fatal(err)
	}
	b.Velocity = rl.Vector3{X: float32(math.Inf(1))}

	err := w.Step()
	if err == nil {
		t.Fatal("expected non-finite step error")
	}
	var nfe *NonFiniteError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NonFiniteError, got %T", err)
	}
	if nfe.BodyID != "bad" {
		t.Errorf("wrong body reported: %s", nfe.BodyID)
	}
}

func TestSphereRestsOnGroundPlane(t *testing.T) {
	w := newTestWorld()
	ground := NewBody("ground", ShapePlane)
	ground.Mass = 0
	ground.Size = rl.Vector3{X: 40, Z: 40}
	ball := NewBody("ball", ShapeSphere)
	ball.Size.X = 0.5
	ball.Position = rl.Vector3{Y: 3}
	ball.Material.Restitution = 0

	if err := w.AddBody(ground); err != nil {
		t.Fatal(err)
	}
	if err := w.AddBody(ball); err != nil {
		t.Fatal(err)
	}

	contactSeen := false
	w.OnContact = func(a, b string, point rl.Vector3) {
		if (a == "ball" && b == "ground") || (a == "ground" && b == "ball") {
			contactSeen = true
		}
	}

	for i := 0; i < 300; i++ {
		if err := w.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	if !contactSeen {
		t.Error("no ball/ground contact reported")
	}
	if ball.Position.Y < 0 {
		t.Errorf("ball fell through the plane: y=%v", ball.Position.Y)
	}
	if ball.Position.Y > 1.5 {
		t.Errorf("ball did not settle: y=%v", ball.Position.Y)
	}
}

func TestWorldConfigValidate(t *testing.T) {
	cfg := DefaultWorldConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	cfg.Timestep = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero timestep accepted")
	}
	cfg = DefaultWorldConfig()
	cfg.Iterations = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero iterations accepted")
	}
}
