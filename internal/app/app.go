// Package app owns the window and the frame loop, wiring input, simulation,
// synchronization and UI together in that order every tick.
package app

import (
	"log"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/config"
	"physstudio/internal/control"
	"physstudio/internal/render"
	"physstudio/internal/studio"
)

type App struct {
	cfg     *config.Config
	studio  *studio.Studio
	camera  *control.OrbitCamera
	pointer control.Pointer
	gizmo   *control.Gizmo
	sync    *render.Synchronizer

	watcher *studio.SceneWatcher

	statusMsg  string
	statusTime float64
}

func New(cfg *config.Config) *App {
	s := studio.New()
	a := &App{
		cfg:    cfg,
		studio: s,
		camera: newCamera(cfg.Camera),
		gizmo:  control.NewGizmo(s),
		sync:   render.NewSynchronizer(),
	}
	s.SimulationChanged.Subscribe(func(st studio.SimulationState) {
		if st.Error != "" {
			a.setStatus("Simulation paused: " + st.Error)
		}
	})
	return a
}

func newCamera(cc config.CameraConfig) *control.OrbitCamera {
	c := control.NewOrbitCamera()
	c.MinDistance = cc.MinDistance
	c.MaxDistance = cc.MaxDistance
	c.MinPolar = cc.MinPolar
	c.MaxPolar = cc.MaxPolar
	c.MinAzimuth = cc.MinAzimuth
	c.MaxAzimuth = cc.MaxAzimuth
	if cc.Fovy > 0 {
		c.Fovy = cc.Fovy
	}
	if cc.OrbitSpeed > 0 {
		c.OrbitSpeed = cc.OrbitSpeed
	}
	if cc.ZoomFactor > 1 {
		c.ZoomFactor = cc.ZoomFactor
	}
	if cc.AutoRotateSpeed != 0 {
		c.AutoRotateSpeed = cc.AutoRotateSpeed
	}
	return c
}

// Run opens the window and drives the loop until close.
func (a *App) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(a.cfg.Window.Width), int32(a.cfg.Window.Height), a.cfg.Window.Title)
	defer rl.CloseWindow()
	// Escape clears the selection; it must not be the window exit key.
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(a.cfg.Window.TargetFPS))
	defer a.sync.Unload()

	initStyle()

	if path := a.cfg.Scene.Path; path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := a.studio.Load(path); err != nil {
				log.Printf("startup scene: %v", err)
			}
		}
		if a.cfg.Scene.Watch {
			a.startWatcher(path)
		}
	}
	if a.watcher != nil {
		defer a.watcher.Close()
	}

	for !rl.WindowShouldClose() {
		a.tick()
	}
	return nil
}

func (a *App) startWatcher(scenePath string) {
	dir := filepath.Dir(scenePath)
	w, err := studio.NewSceneWatcher(dir)
	if err != nil {
		log.Printf("scene watcher: %v", err)
		return
	}
	a.watcher = w
}

// tick performs one frame: input, zero-or-one simulation step, sync, draw.
func (a *App) tick() {
	a.drainWatcher()
	a.handleKeyboard()
	a.handlePointer()

	if a.studio.VisualConfig().AutoRotate && !a.pointer.Dragging() {
		a.camera.AutoRotate(rl.GetFrameTime())
	}

	a.studio.Advance(rl.GetFrameTime())

	cam := a.camera.Camera()
	a.studio.SetCameraPose(cam.Position, cam.Target)

	bodies := a.studio.Bodies()
	a.sync.Sync(bodies)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 26, 32, 255))

	rl.BeginMode3D(cam)
	a.sync.Draw(bodies, a.studio.Contacts(), a.studio.SelectedID(), a.studio.VisualConfig())
	render.DrawConstraints(a.studio.Constraints(), a.studio.Body)
	if a.studio.VisualConfig().ShowGizmos && a.studio.SelectedID() != "" {
		if sel := a.studio.Body(a.studio.SelectedID()); sel != nil {
			rl.DrawRenderBatchActive()
			rl.DisableDepthTest()
			a.gizmo.Draw(sel.Position)
			rl.DrawRenderBatchActive()
			rl.EnableDepthTest()
		}
	}
	rl.EndMode3D()

	a.drawUI()
	rl.EndDrawing()
}

func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			if filepath.Clean(path) != filepath.Clean(a.cfg.Scene.Path) {
				continue
			}
			if err := a.studio.Load(path); err != nil {
				log.Printf("reload scene: %v", err)
				a.setStatus("Reload failed: " + err.Error())
			} else {
				a.setStatus("Scene reloaded")
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("scene watcher: %v", err)
		default:
			return
		}
	}
}

func (a *App) handleKeyboard() {
	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		a.studio.ClearSelection()
	case rl.IsKeyPressed(rl.KeySpace):
		a.toggleRun()
	case rl.IsKeyPressed(rl.KeyPeriod):
		a.studio.StepOnce()
	case rl.IsKeyPressed(rl.KeyG):
		a.gizmo.Mode = control.GizmoTranslate
	case rl.IsKeyPressed(rl.KeyR):
		a.gizmo.Mode = control.GizmoRotate
	case rl.IsKeyPressed(rl.KeyS):
		if rl.IsKeyDown(rl.KeyLeftControl) {
			a.saveScene()
		} else {
			a.gizmo.Mode = control.GizmoScale
		}
	case rl.IsKeyPressed(rl.KeyZ) && rl.IsKeyDown(rl.KeyLeftControl):
		a.studio.Undo()
	case rl.IsKeyPressed(rl.KeyDelete), rl.IsKeyPressed(rl.KeyX):
		if id := a.studio.SelectedID(); id != "" {
			a.studio.DeleteObject(id)
		}
	case rl.IsKeyPressed(rl.KeyD) && rl.IsKeyDown(rl.KeyLeftControl):
		if id := a.studio.SelectedID(); id != "" {
			a.studio.CloneObject(id)
		}
	}
}

func (a *App) toggleRun() {
	st := a.studio.State()
	switch {
	case !st.Running:
		a.studio.Start()
	case st.Paused:
		a.studio.Resume()
	default:
		a.studio.Pause()
	}
}

func (a *App) saveScene() {
	path := a.cfg.Scene.Path
	if path == "" {
		path = "scene.json"
	}
	if err := a.studio.Save(path); err != nil {
		log.Printf("save scene: %v", err)
		a.setStatus("Save failed: " + err.Error())
		return
	}
	a.setStatus("Saved " + path)
}

func (a *App) handlePointer() {
	if a.uiWantsPointer() {
		return
	}
	cam := a.camera.Camera()
	mouse := rl.GetMousePosition()
	ray := rl.GetScreenToWorldRay(mouse, cam)

	a.camera.Zoom(rl.GetMouseWheelMove())

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton), rl.IsMouseButtonPressed(rl.MouseRightButton):
		a.pointerDown(ray, cam)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton), rl.IsMouseButtonReleased(rl.MouseRightButton):
		a.pointer.Up()
		a.gizmo.EndDrag()
	case a.pointer.Dragging():
		a.pointerDrag(ray)
	default:
		a.pointerHover(ray, cam)
	}
}

func (a *App) pointerDown(ray rl.Ray, cam rl.Camera3D) {
	button := rl.MouseLeftButton
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		button = rl.MouseRightButton
	}

	overGizmo := false
	if a.studio.VisualConfig().ShowGizmos {
		if sel := a.studio.Body(a.studio.SelectedID()); sel != nil {
			if axis := a.gizmo.PickAxis(ray, sel.Position); axis >= 0 {
				overGizmo = a.gizmo.StartDrag(sel.ID, axis, ray, cam.Position)
			}
		}
	}

	kind := a.pointer.Down(button, overGizmo)
	if kind != control.DragGizmo && button == rl.MouseLeftButton {
		// A plain click selects what is under the pointer.
		if hit, ok := a.studio.Raycast(ray.Position, ray.Direction, 500); ok {
			a.studio.Select(hit.BodyID)
		} else {
			a.studio.ClearSelection()
		}
	}
}

func (a *App) pointerDrag(ray rl.Ray) {
	delta := rl.GetMouseDelta()
	switch a.pointer.Drag {
	case control.DragGizmo:
		a.gizmo.UpdateDrag(ray)
	case control.DragPan:
		a.camera.Pan(delta.X, delta.Y, float32(rl.GetScreenHeight()))
	case control.DragOrbit:
		a.camera.Orbit(delta.X, delta.Y)
	}
}

func (a *App) pointerHover(ray rl.Ray, cam rl.Camera3D) {
	hoverID := ""
	if hit, ok := a.studio.Raycast(ray.Position, ray.Direction, 500); ok {
		hoverID = hit.BodyID
	}
	a.pointer.Move(hoverID)

	a.gizmo.HoveredAxis = -1
	if a.studio.VisualConfig().ShowGizmos {
		if sel := a.studio.Body(a.studio.SelectedID()); sel != nil {
			a.gizmo.HoveredAxis = a.gizmo.PickAxis(ray, sel.Position)
		}
	}
}

func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = rl.GetTime()
}
