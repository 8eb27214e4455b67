// Package render keeps one GPU primitive per body and redraws the scene
// from the authoritative body list every tick. It never writes physics
// state.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

// primitive is the cached render object for one body id. The mesh is baked
// at the body's size, so the per-frame transform is rotation and
// translation only.
type primitive struct {
	model rl.Model
	shape sim.Shape
	size  rl.Vector3
	color rl.Color
}

// Synchronizer owns the id-keyed primitive cache.
type Synchronizer struct {
	primitives map[string]*primitive
	quality    string
}

func NewSynchronizer() *Synchronizer {
	return &Synchronizer{
		primitives: make(map[string]*primitive),
		quality:    "medium",
	}
}

// SetQuality switches mesh tessellation. Existing primitives are rebuilt
// lazily on their next sync.
func (s *Synchronizer) SetQuality(quality string) {
	if quality == s.quality {
		return
	}
	s.quality = quality
	for id, p := range s.primitives {
		rl.UnloadModel(p.model)
		delete(s.primitives, id)
	}
}

func (s *Synchronizer) segments() int32 {
	switch s.quality {
	case "low":
		return 8
	case "high":
		return 32
	default:
		return 16
	}
}

// Sync reconciles the primitive cache with the body list: create missing
// primitives, rebuild ones whose geometry inputs changed, copy transforms,
// and dispose primitives whose body is gone.
func (s *Synchronizer) Sync(bodies []*sim.Body) {
	seen := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		seen[b.ID] = true

		p, ok := s.primitives[b.ID]
		if ok && (p.shape != b.Shape || p.size != b.Size || p.color != b.Color) {
			rl.UnloadModel(p.model)
			ok = false
		}
		if !ok {
			p = &primitive{
				model: s.buildModel(b),
				shape: b.Shape,
				size:  b.Size,
				color: b.Color,
			}
			s.primitives[b.ID] = p
		}

		rot := b.Rotation
		rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(
			rl.MatrixRotateX(rot.X*rl.Deg2rad),
			rl.MatrixRotateY(rot.Y*rl.Deg2rad)),
			rl.MatrixRotateZ(rot.Z*rl.Deg2rad))
		trans := rl.MatrixTranslate(b.Position.X, b.Position.Y, b.Position.Z)
		local := rl.MatrixIdentity()
		if b.Shape == sim.ShapeCylinder {
			// GenMeshCylinder puts the origin at the base; bodies are
			// centered on their position.
			local = rl.MatrixTranslate(0, -b.Size.Y/2, 0)
		}
		p.model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(local, rotMatrix), trans)
	}

	for id, p := range s.primitives {
		if !seen[id] {
			rl.UnloadModel(p.model)
			delete(s.primitives, id)
		}
	}
}

func (s *Synchronizer) buildModel(b *sim.Body) rl.Model {
	var mesh rl.Mesh
	segs := s.segments()
	switch b.Shape {
	case sim.ShapeSphere:
		mesh = rl.GenMeshSphere(b.Size.X, int(segs), int(segs))
	case sim.ShapeCylinder:
		mesh = rl.GenMeshCylinder(b.Size.X, b.Size.Y, int(segs))
	case sim.ShapePlane:
		mesh = rl.GenMeshPlane(b.Size.X, b.Size.Z, 1, 1)
	default:
		mesh = rl.GenMeshCube(b.Size.X, b.Size.Y, b.Size.Z)
	}
	model := rl.LoadModelFromMesh(mesh)
	model.Materials.Maps.Color = b.Color
	return model
}

// Unload releases every cached primitive.
func (s *Synchronizer) Unload() {
	for id, p := range s.primitives {
		rl.UnloadModel(p.model)
		delete(s.primitives, id)
	}
}
