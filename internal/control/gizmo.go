package control

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

// GizmoMode selects which transform a drag edits.
type GizmoMode int

const (
	GizmoTranslate GizmoMode = iota
	GizmoRotate
	GizmoScale
)

const (
	gizmoLength    float32 = 2.0
	gizmoTipSize   float32 = 0.2
	gizmoHitDist   float32 = 0.3
	gizmoThickness float32 = 0.06
	ringHitDist    float32 = 0.4
)

var gizmoAxes = [3]rl.Vector3{
	{X: 1}, // X - red
	{Y: 1}, // Y - green
	{Z: 1}, // Z - blue
}

var gizmoColors = [3]rl.Color{rl.Red, rl.Green, rl.Blue}

// sceneEditor is the slice of the orchestrator the gizmo writes through.
type sceneEditor interface {
	Body(id string) *sim.Body
	UpdateBodyProperty(id, key string, value any)
	PushUndo(id string)
}

// Gizmo manipulates one body along a single world axis per drag. All writes
// go through the scene editor's property path so observers fire normally.
type Gizmo struct {
	Mode GizmoMode

	scene sceneEditor

	HoveredAxis int // -1 when none

	dragging    bool
	target      string
	axisIdx     int
	axis        rl.Vector3
	initPos     rl.Vector3
	initRot     rl.Vector3
	initSize    rl.Vector3
	planeNormal rl.Vector3
	dragStart   float32
}

func NewGizmo(scene sceneEditor) *Gizmo {
	return &Gizmo{scene: scene, HoveredAxis: -1}
}

// PickAxis returns the index of the handle closest to the ray, or -1.
func (g *Gizmo) PickAxis(ray rl.Ray, center rl.Vector3) int {
	bestDist := float32(math.MaxFloat32)
	bestAxis := -1

	if g.Mode == GizmoRotate {
		radius := gizmoLength * 0.8
		for i, normal := range gizmoAxes {
			pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, center, normal)
			if !ok {
				continue
			}
			fromCenter := rl.Vector3Length(rl.Vector3Subtract(pt, center))
			fromRing := float32(math.Abs(float64(fromCenter - radius)))
			if fromRing < ringHitDist && fromRing < bestDist {
				bestDist = fromRing
				bestAxis = i
			}
		}
		return bestAxis
	}

	for i, axis := range gizmoAxes {
		_, t2, dist := closestPointBetweenRays(ray.Position, ray.Direction, center, axis)
		if t2 > 0 && t2 < gizmoLength && dist < gizmoHitDist && dist < bestDist {
			bestDist = dist
			bestAxis = i
		}
	}
	return bestAxis
}

// StartDrag begins manipulating a body along one axis. Static bodies are
// refused: they must keep their placement unless edited numerically.
func (g *Gizmo) StartDrag(id string, axisIdx int, ray rl.Ray, cameraPos rl.Vector3) bool {
	b := g.scene.Body(id)
	if b == nil || axisIdx < 0 || axisIdx > 2 {
		return false
	}
	if b.Static() {
		return false
	}
	g.scene.PushUndo(id)

	g.dragging = true
	g.target = id
	g.axisIdx = axisIdx
	g.axis = gizmoAxes[axisIdx]
	g.initPos = b.Position
	g.initRot = b.Rotation
	g.initSize = b.Size

	// Drag plane contains the axis and faces the camera as much as possible.
	viewDir := rl.Vector3Subtract(b.Position, cameraPos)
	if rl.Vector3Length(viewDir) < 1e-6 {
		g.dragging = false
		return false
	}
	viewDir = rl.Vector3Normalize(viewDir)
	cross := rl.Vector3CrossProduct(viewDir, g.axis)
	g.planeNormal = rl.Vector3Normalize(rl.Vector3CrossProduct(g.axis, cross))

	if pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, g.initPos, g.planeNormal); ok {
		g.dragStart = rl.Vector3DotProduct(rl.Vector3Subtract(pt, g.initPos), g.axis)
	}
	return true
}

// UpdateDrag moves the manipulated transform to follow the pointer. A ray
// that misses the drag plane leaves the body where the last update put it.
func (g *Gizmo) UpdateDrag(ray rl.Ray) {
	if !g.dragging {
		return
	}
	if g.scene.Body(g.target) == nil {
		g.dragging = false
		return
	}
	pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, g.initPos, g.planeNormal)
	if !ok {
		return
	}
	delta := rl.Vector3DotProduct(rl.Vector3Subtract(pt, g.initPos), g.axis) - g.dragStart

	switch g.Mode {
	case GizmoTranslate:
		pos := rl.Vector3Add(g.initPos, rl.Vector3Scale(g.axis, delta))
		g.scene.UpdateBodyProperty(g.target, "position", pos)

	case GizmoRotate:
		// One world unit of drag is 45 degrees.
		degrees := delta * 45
		rot := g.initRot
		switch g.axisIdx {
		case 0:
			rot.X += degrees
		case 1:
			rot.Y += degrees
		case 2:
			rot.Z += degrees
		}
		g.scene.UpdateBodyProperty(g.target, "rotation", rot)

	case GizmoScale:
		factor := 1 + delta*0.5
		if factor < 0.1 {
			factor = 0.1
		}
		size := g.initSize
		switch g.axisIdx {
		case 0:
			size.X = g.initSize.X * factor
		case 1:
			size.Y = g.initSize.Y * factor
		case 2:
			size.Z = g.initSize.Z * factor
		}
		g.scene.UpdateBodyProperty(g.target, "size", size)
	}
}

// EndDrag finishes the active manipulation.
func (g *Gizmo) EndDrag() {
	g.dragging = false
	g.target = ""
}

// Dragging reports whether a handle drag is active.
func (g *Gizmo) Dragging() bool { return g.dragging }

// Draw renders the axis handles at the selection. Call inside BeginMode3D
// with depth testing handled by the caller.
func (g *Gizmo) Draw(center rl.Vector3) {
	for i, axis := range gizmoAxes {
		color := gizmoColors[i]
		if g.dragging && g.axisIdx == i {
			color = rl.Yellow
		} else if !g.dragging && g.HoveredAxis == i {
			color = rl.Yellow
		}
		end := rl.Vector3Add(center, rl.Vector3Scale(axis, gizmoLength))

		switch g.Mode {
		case GizmoTranslate:
			rl.DrawCylinderEx(center, end, gizmoThickness, gizmoThickness, 8, color)
			tip := rl.Vector3{X: gizmoTipSize, Y: gizmoTipSize, Z: gizmoTipSize}
			rl.DrawCubeV(end, tip, color)
		case GizmoRotate:
			drawRing(center, i, gizmoLength*0.8, color)
		case GizmoScale:
			rl.DrawCylinderEx(center, end, gizmoThickness, gizmoThickness, 8, color)
			cube := rl.Vector3{X: 0.25, Y: 0.25, Z: 0.25}
			rl.DrawCubeV(end, cube, color)
			rl.DrawCubeWiresV(end, cube, color)
		}
	}
}

// drawRing approximates a rotation ring with short cylinder segments.
func drawRing(center rl.Vector3, axisIdx int, radius float32, color rl.Color) {
	const segments = 16
	for s := 0; s < segments; s++ {
		t0 := float64(s) / segments * math.Pi * 2
		t1 := float64(s+1) / segments * math.Pi * 2
		var p0, p1 rl.Vector3
		switch axisIdx {
		case 0: // ring in YZ plane
			p0 = rl.Vector3{X: center.X, Y: center.Y + radius*float32(math.Cos(t0)), Z: center.Z + radius*float32(math.Sin(t0))}
			p1 = rl.Vector3{X: center.X, Y: center.Y + radius*float32(math.Cos(t1)), Z: center.Z + radius*float32(math.Sin(t1))}
		case 1: // XZ plane
			p0 = rl.Vector3{X: center.X + radius*float32(math.Cos(t0)), Y: center.Y, Z: center.Z + radius*float32(math.Sin(t0))}
			p1 = rl.Vector3{X: center.X + radius*float32(math.Cos(t1)), Y: center.Y, Z: center.Z + radius*float32(math.Sin(t1))}
		case 2: // XY plane
			p0 = rl.Vector3{X: center.X + radius*float32(math.Cos(t0)), Y: center.Y + radius*float32(math.Sin(t0)), Z: center.Z}
			p1 = rl.Vector3{X: center.X + radius*float32(math.Cos(t1)), Y: center.Y + radius*float32(math.Sin(t1)), Z: center.Z}
		}
		rl.DrawCylinderEx(p0, p1, gizmoThickness*0.7, gizmoThickness*0.7, 6, color)
	}
}

// --- math helpers ---

// closestPointBetweenRays finds the closest approach between two rays.
// Returns (t1, t2, distance) where t1/t2 are parameters along each ray.
func closestPointBetweenRays(a, u, b, v rl.Vector3) (t1, t2, dist float32) {
	w := rl.Vector3Subtract(a, b)
	uu := rl.Vector3DotProduct(u, u)
	uv := rl.Vector3DotProduct(u, v)
	vv := rl.Vector3DotProduct(v, v)
	uw := rl.Vector3DotProduct(u, w)
	vw := rl.Vector3DotProduct(v, w)

	denom := uu*vv - uv*uv
	if denom < 1e-6 {
		return 0, 0, float32(math.MaxFloat32)
	}

	t1 = (uv*vw - vv*uw) / denom
	t2 = (uu*vw - uv*uw) / denom

	p1 := rl.Vector3Add(a, rl.Vector3Scale(u, t1))
	p2 := rl.Vector3Add(b, rl.Vector3Scale(v, t2))
	dist = rl.Vector3Length(rl.Vector3Subtract(p1, p2))
	return
}

// rayPlaneIntersect returns where a ray hits a plane (point + normal).
func rayPlaneIntersect(rayOrigin, rayDir, planePoint, planeNormal rl.Vector3) (rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(rayDir, planeNormal)
	if math.Abs(float64(denom)) < 1e-6 {
		return rl.Vector3{}, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(planePoint, rayOrigin), planeNormal) / denom
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(rayOrigin, rl.Vector3Scale(rayDir, t)), true
}
