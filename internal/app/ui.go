package app

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/catalog"
	"physstudio/internal/control"
)

const (
	toolbarHeight  = int32(36)
	catalogWidth   = int32(200)
	inspectorWidth = int32(240)
	statusHeight   = int32(24)
	rowHeight      = float32(24)
	statusFadeSecs = 4.0
)

var (
	colorBgPanel = rl.NewColor(18, 18, 24, 245)
	colorBorder  = rl.NewColor(50, 50, 65, 255)
	colorText    = rl.NewColor(200, 200, 208, 255)
	colorAccent  = rl.NewColor(108, 99, 255, 255)
)

func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(10, 10, 15, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(28, 28, 38, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(38, 38, 52, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}

// uiWantsPointer reports whether the pointer is over a UI panel, so scene
// picking does not fire through buttons.
func (a *App) uiWantsPointer() bool {
	m := rl.GetMousePosition()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if m.Y <= float32(toolbarHeight) || m.Y >= h-float32(statusHeight) {
		return true
	}
	if m.X <= float32(catalogWidth) {
		return true
	}
	if a.studio.SelectedID() != "" && m.X >= w-float32(inspectorWidth) {
		return true
	}
	return false
}

func (a *App) drawUI() {
	a.drawToolbar()
	a.drawCatalog()
	a.drawInspector()
	a.drawStatusBar()
}

func (a *App) drawToolbar() {
	w := int32(rl.GetScreenWidth())
	rl.DrawRectangle(0, 0, w, toolbarHeight, colorBgPanel)
	rl.DrawLine(0, toolbarHeight, w, toolbarHeight, colorBorder)

	x := float32(8)
	btn := func(label string) bool {
		b := gui.Button(rl.Rectangle{X: x, Y: 6, Width: 64, Height: rowHeight}, label)
		x += 70
		return b
	}

	st := a.studio.State()
	runLabel := "Start"
	if st.Running && !st.Paused {
		runLabel = "Pause"
	} else if st.Paused {
		runLabel = "Resume"
	}
	if btn(runLabel) {
		a.toggleRun()
	}
	if btn("Step") {
		a.studio.StepOnce()
	}
	if btn("Reset") {
		a.studio.Reset()
	}
	if btn("Stop") {
		a.studio.Stop()
	}
	if btn("Clear") {
		a.studio.ClearScene()
	}
	x += 12
	if btn("Save") {
		a.saveScene()
	}
	if btn("Load") {
		if err := a.studio.Load(a.cfg.Scene.Path); err != nil {
			a.setStatus("Load failed: " + err.Error())
		} else {
			a.setStatus("Loaded " + a.cfg.Scene.Path)
		}
	}

	x += 12
	modes := []struct {
		label string
		mode  control.GizmoMode
	}{{"Move", control.GizmoTranslate}, {"Rot", control.GizmoRotate}, {"Scale", control.GizmoScale}}
	for _, m := range modes {
		label := m.label
		if a.gizmo.Mode == m.mode {
			label = "[" + label + "]"
		}
		if gui.Button(rl.Rectangle{X: x, Y: 6, Width: 56, Height: rowHeight}, label) {
			a.gizmo.Mode = m.mode
		}
		x += 60
	}

	// Visual toggles live on the right edge.
	visual := a.studio.VisualConfig()
	cx := float32(rl.GetScreenWidth()) - 4*104
	visual.EnableShadows = gui.CheckBox(rl.Rectangle{X: cx, Y: 10, Width: 16, Height: 16}, "Shadows", visual.EnableShadows)
	visual.ShowGizmos = gui.CheckBox(rl.Rectangle{X: cx + 104, Y: 10, Width: 16, Height: 16}, "Gizmos", visual.ShowGizmos)
	visual.ShowDebug = gui.CheckBox(rl.Rectangle{X: cx + 208, Y: 10, Width: 16, Height: 16}, "Debug", visual.ShowDebug)
	visual.AutoRotate = gui.CheckBox(rl.Rectangle{X: cx + 312, Y: 10, Width: 16, Height: 16}, "Spin", visual.AutoRotate)
	a.studio.SetVisualConfig(visual)
	a.sync.SetQuality(visual.Quality)
}

func (a *App) drawCatalog() {
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, toolbarHeight, catalogWidth, h-toolbarHeight-statusHeight, colorBgPanel)
	rl.DrawLine(catalogWidth, toolbarHeight, catalogWidth, h-statusHeight, colorBorder)

	y := float32(toolbarHeight) + 8
	rl.DrawText("Bodies", 12, int32(y), 16, colorText)
	y += 22
	for _, tpl := range catalog.Bodies() {
		if gui.Button(rl.Rectangle{X: 8, Y: y, Width: float32(catalogWidth) - 16, Height: rowHeight}, tpl.Name) {
			a.studio.AddBody(tpl, nil)
		}
		y += rowHeight + 4
	}

	y += 10
	rl.DrawText("Systems", 12, int32(y), 16, colorText)
	y += 22
	for _, tpl := range catalog.Systems() {
		if gui.Button(rl.Rectangle{X: 8, Y: y, Width: float32(catalogWidth) - 16, Height: rowHeight}, tpl.Name) {
			a.studio.AddSystem(tpl)
			a.setStatus("Loaded " + tpl.Name)
		}
		y += rowHeight + 4
	}
}

func (a *App) drawInspector() {
	id := a.studio.SelectedID()
	b := a.studio.Body(id)
	if b == nil {
		return
	}

	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	px := w - inspectorWidth
	rl.DrawRectangle(px, toolbarHeight, inspectorWidth, h-toolbarHeight-statusHeight, colorBgPanel)
	rl.DrawLine(px, toolbarHeight, px, h-statusHeight, colorBorder)

	x := float32(px) + 12
	fieldW := float32(inspectorWidth) - 24
	y := float32(toolbarHeight) + 10

	// One undo snapshot per click into the panel, so slider edits revert
	// as a unit.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.GetMousePosition().X >= float32(px) {
		a.studio.PushUndo(id)
	}

	rl.DrawText(b.ID, int32(x), int32(y), 16, rl.White)
	y += 22
	rl.DrawText(fmt.Sprintf("shape: %s", b.Shape), int32(x), int32(y), 14, colorText)
	y += 20
	rl.DrawText(fmt.Sprintf("pos  %.2f  %.2f  %.2f", b.Position.X, b.Position.Y, b.Position.Z), int32(x), int32(y), 14, colorText)
	y += 20
	rl.DrawText(fmt.Sprintf("vel  %.2f  %.2f  %.2f", b.Velocity.X, b.Velocity.Y, b.Velocity.Z), int32(x), int32(y), 14, colorText)
	y += 26

	if !b.Static() {
		mass := gui.Slider(rl.Rectangle{X: x + 48, Y: y, Width: fieldW - 96, Height: 16},
			"mass", fmt.Sprintf("%.1f", b.Mass), b.Mass, 0.1, 20)
		if mass != b.Mass {
			a.studio.UpdateBodyProperty(id, "mass", mass)
		}
		y += 24
	} else {
		rl.DrawText("static", int32(x), int32(y), 14, colorText)
		y += 24
	}

	friction := gui.Slider(rl.Rectangle{X: x + 48, Y: y, Width: fieldW - 96, Height: 16},
		"fric", fmt.Sprintf("%.2f", b.Material.Friction), b.Material.Friction, 0, 1)
	if friction != b.Material.Friction {
		a.studio.UpdateBodyProperty(id, "friction", friction)
	}
	y += 24

	restitution := gui.Slider(rl.Rectangle{X: x + 48, Y: y, Width: fieldW - 96, Height: 16},
		"rest", fmt.Sprintf("%.2f", b.Material.Restitution), b.Material.Restitution, 0, 1)
	if restitution != b.Material.Restitution {
		a.studio.UpdateBodyProperty(id, "restitution", restitution)
	}
	y += 32

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: fieldW/2 - 4, Height: rowHeight}, "Clone") {
		a.studio.CloneObject(id)
	}
	if gui.Button(rl.Rectangle{X: x + fieldW/2 + 4, Y: y, Width: fieldW/2 - 4, Height: rowHeight}, "Delete") {
		a.studio.DeleteObject(id)
	}
}

func (a *App) drawStatusBar() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	y := h - statusHeight
	rl.DrawRectangle(0, y, w, statusHeight, colorBgPanel)
	rl.DrawLine(0, y, w, y, colorBorder)

	st := a.studio.State()
	mode := "idle"
	if st.Running && !st.Paused {
		mode = "running"
	} else if st.Paused {
		mode = "paused"
	}
	left := fmt.Sprintf("%s | t=%.2fs | steps=%d | bodies=%d | %d fps",
		mode, st.CurrentTime, st.TotalSteps, len(a.studio.Bodies()), rl.GetFPS())
	rl.DrawText(left, 8, y+5, 14, colorText)

	if a.statusMsg != "" && rl.GetTime()-a.statusTime < statusFadeSecs {
		tw := rl.MeasureText(a.statusMsg, 14)
		rl.DrawText(a.statusMsg, w-tw-8, y+5, 14, rl.Yellow)
	}
}
