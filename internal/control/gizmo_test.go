package control

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

// fakeScene is a minimal scene editor backed by a map.
type fakeScene struct {
	bodies  map[string]*sim.Body
	updates []string
}

func newFakeScene(bodies ...*sim.Body) *fakeScene {
	f := &fakeScene{bodies: make(map[string]*sim.Body)}
	for _, b := range bodies {
		f.bodies[b.ID] = b
	}
	return f
}

func (f *fakeScene) Body(id string) *sim.Body { return f.bodies[id] }

func (f *fakeScene) UpdateBodyProperty(id, key string, value any) {
	b := f.bodies[id]
	if b == nil {
		return
	}
	f.updates = append(f.updates, key)
	switch key {
	case "position":
		b.Position = value.(rl.Vector3)
	case "rotation":
		b.Rotation = value.(rl.Vector3)
	case "size":
		b.Size = value.(rl.Vector3)
	}
}

func (f *fakeScene) PushUndo(string) {}

func TestPickAxisAlongArrow(t *testing.T) {
	g := NewGizmo(newFakeScene())
	center := rl.Vector3{}
	// Ray pointing down onto the X arrow, halfway along it.
	ray := rl.Ray{
		Position:  rl.Vector3{X: 1, Y: 5},
		Direction: rl.Vector3{Y: -1},
	}
	if axis := g.PickAxis(ray, center); axis != 0 {
		t.Errorf("picked axis %d, want X (0)", axis)
	}
}

func TestPickAxisMiss(t *testing.T) {
	g := NewGizmo(newFakeScene())
	ray := rl.Ray{
		Position:  rl.Vector3{X: 50, Y: 5},
		Direction: rl.Vector3{Y: -1},
	}
	if axis := g.PickAxis(ray, rl.Vector3{}); axis != -1 {
		t.Errorf("picked axis %d far from the gizmo", axis)
	}
}

func TestTranslateDragConstrainedToAxis(t *testing.T) {
	b := sim.NewBody("crate", sim.ShapeBox)
	scene := newFakeScene(b)
	g := NewGizmo(scene)
	g.Mode = GizmoTranslate

	cameraPos := rl.Vector3{Y: 5, Z: 10}
	down := rl.Ray{Position: rl.Vector3{Y: 5, Z: 10}, Direction: rl.Vector3Normalize(rl.Vector3{Y: -5, Z: -10})}
	if !g.StartDrag("crate", 0, down, cameraPos) {
		t.Fatal("drag refused")
	}

	// Pointer moved so the ray now aims at x=2 on the drag plane.
	move := rl.Ray{Position: rl.Vector3{X: 2, Y: 5, Z: 10}, Direction: rl.Vector3Normalize(rl.Vector3{Y: -5, Z: -10})}
	g.UpdateDrag(move)

	if b.Position.X <= 0 {
		t.Errorf("body did not move along X: %v", b.Position)
	}
	if math.Abs(float64(b.Position.Y)) > 1e-3 || math.Abs(float64(b.Position.Z)) > 1e-3 {
		t.Errorf("drag leaked off-axis: %v", b.Position)
	}
}

func TestTranslateRefusesStaticBody(t *testing.T) {
	b := sim.NewBody("wall", sim.ShapeBox)
	b.Mass = 0
	g := NewGizmo(newFakeScene(b))
	g.Mode = GizmoTranslate

	ray := rl.Ray{Position: rl.Vector3{Y: 5}, Direction: rl.Vector3{Y: -1}}
	if g.StartDrag("wall", 0, ray, rl.Vector3{Y: 5, Z: 10}) {
		t.Error("translate drag accepted a static body")
	}
}

func TestRotateAndScaleRefuseStaticBody(t *testing.T) {
	b := sim.NewBody("wall", sim.ShapeBox)
	b.Mass = 0
	g := NewGizmo(newFakeScene(b))

	ray := rl.Ray{Position: rl.Vector3{Y: 5}, Direction: rl.Vector3{Y: -1}}
	for _, mode := range []GizmoMode{GizmoRotate, GizmoScale} {
		g.Mode = mode
		if g.StartDrag("wall", 0, ray, rl.Vector3{Y: 5, Z: 10}) {
			t.Errorf("mode %d drag accepted a static body", mode)
		}
	}
}

func TestScaleDragGrowsSingleAxis(t *testing.T) {
	b := sim.NewBody("crate", sim.ShapeBox)
	scene := newFakeScene(b)
	g := NewGizmo(scene)
	g.Mode = GizmoScale

	cameraPos := rl.Vector3{Y: 5, Z: 10}
	down := rl.Ray{Position: cameraPos, Direction: rl.Vector3Normalize(rl.Vector3{Y: -5, Z: -10})}
	if !g.StartDrag("crate", 0, down, cameraPos) {
		t.Fatal("drag refused")
	}
	move := rl.Ray{Position: rl.Vector3{X: 2, Y: 5, Z: 10}, Direction: rl.Vector3Normalize(rl.Vector3{Y: -5, Z: -10})}
	g.UpdateDrag(move)

	if b.Size.X <= 1 {
		t.Errorf("size.X %v did not grow", b.Size.X)
	}
	if b.Size.Y != 1 || b.Size.Z != 1 {
		t.Errorf("scale leaked off-axis: %v", b.Size)
	}
}

func TestDragEndsWhenTargetDeleted(t *testing.T) {
	b := sim.NewBody("crate", sim.ShapeBox)
	scene := newFakeScene(b)
	g := NewGizmo(scene)

	cameraPos := rl.Vector3{Y: 5, Z: 10}
	down := rl.Ray{Position: cameraPos, Direction: rl.Vector3Normalize(rl.Vector3{Y: -5, Z: -10})}
	if !g.StartDrag("crate", 0, down, cameraPos) {
		t.Fatal("drag refused")
	}
	delete(scene.bodies, "crate")
	g.UpdateDrag(down)
	if g.Dragging() {
		t.Error("drag survived target deletion")
	}
}
