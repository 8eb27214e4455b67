package control

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointerState is the interaction phase of the pointer.
type PointerState int

const (
	PointerIdle PointerState = iota
	PointerHover
	PointerDragging
)

// DragKind says what an active drag is manipulating.
type DragKind int

const (
	DragNone DragKind = iota
	DragGizmo
	DragOrbit
	DragPan
)

// Pointer is the interaction state machine:
//
//	idle -> hover (pointer over a selectable body)
//	hover/idle -> dragging (button down)
//	dragging -> idle/hover (button up)
//
// A drag that starts on a gizmo handle manipulates the selection; any
// other drag drives the camera, orbit on left and pan on right. The
// machine holds no scene references so transitions are testable in
// isolation.
type Pointer struct {
	State PointerState
	// Hover is the body id under the pointer, "" for none. Independent
	// of selection.
	Hover string
	Drag  DragKind
}

// Move updates hover from a pick result. Ignored mid-drag: the drag target
// was fixed at button-down.
func (p *Pointer) Move(hoverID string) {
	if p.State == PointerDragging {
		return
	}
	p.Hover = hoverID
	if hoverID != "" {
		p.State = PointerHover
	} else {
		p.State = PointerIdle
	}
}

// Down starts a drag and reports what kind it is. overGizmo wins over the
// camera interpretation regardless of button.
func (p *Pointer) Down(button rl.MouseButton, overGizmo bool) DragKind {
	switch {
	case overGizmo:
		p.Drag = DragGizmo
	case button == rl.MouseRightButton:
		p.Drag = DragPan
	default:
		p.Drag = DragOrbit
	}
	p.State = PointerDragging
	return p.Drag
}

// Up ends the drag, falling back to hover or idle based on the last pick.
func (p *Pointer) Up() {
	p.Drag = DragNone
	if p.Hover != "" {
		p.State = PointerHover
	} else {
		p.State = PointerIdle
	}
}

// Dragging reports whether a drag is active, used to suspend auto-rotate.
func (p *Pointer) Dragging() bool {
	return p.State == PointerDragging
}
