package studio

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxUndoStack = 50

// undoEntry snapshots one body's transform before a manipulation.
type undoEntry struct {
	id              string
	position        rl.Vector3
	rotation        rl.Vector3
	size            rl.Vector3
	velocity        rl.Vector3
	angularVelocity rl.Vector3
}

// PushUndo records the body's current transform so a following manipulation
// can be undone. Call once at drag start, not per frame. Unknown ids are
// ignored.
func (s *Studio) PushUndo(id string) {
	b := s.world.Body(id)
	if b == nil {
		return
	}
	if len(s.undoStack) >= maxUndoStack {
		s.undoStack = s.undoStack[1:]
	}
	s.undoStack = append(s.undoStack, undoEntry{
		id:              b.ID,
		position:        b.Position,
		rotation:        b.Rotation,
		size:            b.Size,
		velocity:        b.Velocity,
		angularVelocity: b.AngularVelocity,
	})
}

// Undo restores the most recently recorded transform. Entries whose body no
// longer exists are skipped.
func (s *Studio) Undo() {
	for len(s.undoStack) > 0 {
		entry := s.undoStack[len(s.undoStack)-1]
		s.undoStack = s.undoStack[:len(s.undoStack)-1]

		b := s.world.Body(entry.id)
		if b == nil {
			continue
		}
		b.Position = entry.position
		b.Rotation = entry.rotation
		b.Size = entry.size
		b.Velocity = entry.velocity
		b.AngularVelocity = entry.angularVelocity
		if !s.state.Running && s.state.CurrentTime == 0 {
			s.commit(b)
		}
		s.selected = entry.id
		s.notifyObjects()
		return
	}
}
