package sim

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestRaycastThroughSphereCenter(t *testing.T) {
	w := newTestWorld()
	ball := NewBody("ball", ShapeSphere)
	ball.Size.X = 0.5
	ball.Position = rl.Vector3{Z: -10}
	if err := w.AddBody(ball); err != nil {
		t.Fatal(err)
	}

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	if !ok {
		t.Fatal("ray through center missed")
	}
	if hit.BodyID != "ball" {
		t.Errorf("hit %s, want ball", hit.BodyID)
	}
	if absf(hit.Distance-9.5) > 0.01 {
		t.Errorf("distance %v, want 9.5", hit.Distance)
	}
}

func TestRaycastNearestWins(t *testing.T) {
	w := newTestWorld()
	near := NewBody("near", ShapeSphere)
	near.Size.X = 0.5
	near.Position = rl.Vector3{Z: -5}
	far := NewBody("far", ShapeSphere)
	far.Size.X = 0.5
	far.Position = rl.Vector3{Z: -12}
	if err := w.AddBody(far); err != nil {
		t.Fatal(err)
	}
	if err := w.AddBody(near); err != nil {
		t.Fatal(err)
	}

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	if !ok {
		t.Fatal("ray missed both spheres")
	}
	if hit.BodyID != "near" {
		t.Errorf("hit %s, want near", hit.BodyID)
	}
}

func TestRaycastBox(t *testing.T) {
	w := newTestWorld()
	box := NewBody("box", ShapeBox)
	box.Size = rl.Vector3{X: 2, Y: 2, Z: 2}
	box.Position = rl.Vector3{X: 5}
	if err := w.AddBody(box); err != nil {
		t.Fatal(err)
	}

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100)
	if !ok {
		t.Fatal("ray missed box")
	}
	if absf(hit.Distance-4) > 0.01 {
		t.Errorf("distance %v, want 4", hit.Distance)
	}
	if hit.Normal.X != -1 {
		t.Errorf("normal %+v, want -X face", hit.Normal)
	}

	if _, ok := w.Raycast(rl.Vector3{Y: 10}, rl.Vector3{X: 1}, 100); ok {
		t.Error("ray above the box should miss")
	}
}

func TestRaycastZeroDirectionIsNoop(t *testing.T) {
	w := newTestWorld()
	if err := w.AddBody(NewBody("a", ShapeSphere)); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.Raycast(rl.Vector3{}, rl.Vector3{}, 100); ok {
		t.Error("zero-length direction should not hit")
	}
}

func TestRaycastRespectsMaxDistance(t *testing.T) {
	w := newTestWorld()
	ball := NewBody("ball", ShapeSphere)
	ball.Position = rl.Vector3{Z: -50}
	if err := w.AddBody(ball); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 10); ok {
		t.Error("hit beyond max distance")
	}
}
