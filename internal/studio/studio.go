// Package studio owns the authoritative scene state: bodies, constraints,
// world and visual config, selection and run state. Every mutation goes
// through here and observers are notified synchronously afterwards.
package studio

import (
	"fmt"
	"log"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/catalog"
	"physstudio/internal/sim"
)

// maxFrameLag caps the fixed-step accumulator so a long stall does not turn
// into a burst of catch-up steps.
const maxFrameLag = 0.25

// Studio is the orchestrator. Single-threaded by design: it is mutated only
// from the frame loop, and observers run synchronously inside the mutation.
type Studio struct {
	world  *sim.World
	visual VisualConfig
	state  SimulationState

	selected string

	cameraPosition rl.Vector3
	cameraTarget   rl.Vector3

	committed   map[string]committedTransform
	accumulator float32
	seq         int
	rng         *rand.Rand

	undoStack []undoEntry

	// Observer events, in the order they matter to a host UI.
	ObjectsChanged    Event[ObjectsSnapshot]
	SimulationChanged Event[SimulationState]
	BodyMoved         Event[BodyTransform]
	Collided          Event[CollisionEvent]
	SceneExported     Event[*SceneDocument]
	SceneImported     Event[*SceneDocument]
}

// New creates a studio with an empty scene and default configs.
func New() *Studio {
	s := &Studio{
		visual:    DefaultVisualConfig(),
		committed: make(map[string]committedTransform),
		rng:       rand.New(rand.NewSource(rand.Int63())),
	}
	s.installWorld(sim.NewWorld(sim.DefaultWorldConfig()))
	s.state.TimeStep = s.world.Config().Timestep
	return s
}

func (s *Studio) installWorld(w *sim.World) {
	w.OnContact = func(a, b string, point rl.Vector3) {
		s.Collided.emit(CollisionEvent{BodyA: a, BodyB: b, Point: point})
	}
	s.world = w
}

// --- accessors ---

// Bodies returns the canonical body list in insertion order.
func (s *Studio) Bodies() []*sim.Body { return s.world.Bodies() }

// Constraints returns the canonical constraint list.
func (s *Studio) Constraints() []*sim.Constraint { return s.world.Constraints() }

// Body returns a body by id, or nil.
func (s *Studio) Body(id string) *sim.Body { return s.world.Body(id) }

// WorldConfig returns the active world config.
func (s *Studio) WorldConfig() sim.WorldConfig { return s.world.Config() }

// VisualConfig returns the display settings.
func (s *Studio) VisualConfig() VisualConfig { return s.visual }

// State returns the current simulation state.
func (s *Studio) State() SimulationState { return s.state }

// Contacts returns the contacts recorded by the last step.
func (s *Studio) Contacts() []sim.Contact { return s.world.Contacts() }

// Raycast forwards to the physics world.
func (s *Studio) Raycast(origin, dir rl.Vector3, max float32) (sim.RaycastHit, bool) {
	return s.world.Raycast(origin, dir, max)
}

// SetWorldConfig replaces the world config. Takes effect next step.
func (s *Studio) SetWorldConfig(cfg sim.WorldConfig) {
	s.world.SetConfig(cfg)
	s.state.TimeStep = s.world.Config().Timestep
	s.SimulationChanged.emit(s.state)
}

// SetVisualConfig replaces the display settings.
func (s *Studio) SetVisualConfig(cfg VisualConfig) {
	s.visual = cfg
}

// SetCameraPose records the camera for export.
func (s *Studio) SetCameraPose(position, target rl.Vector3) {
	s.cameraPosition = position
	s.cameraTarget = target
}

// CameraPose returns the recorded camera position and target.
func (s *Studio) CameraPose() (rl.Vector3, rl.Vector3) {
	return s.cameraPosition, s.cameraTarget
}

// --- selection ---

// SelectedID returns the selected body id, or "".
func (s *Studio) SelectedID() string { return s.selected }

// Select marks a body as selected. Unknown ids are a logged no-op.
func (s *Studio) Select(id string) {
	if s.world.Body(id) == nil {
		log.Printf("Studio: select unknown body %s", id)
		return
	}
	s.selected = id
}

// ClearSelection drops the selection.
func (s *Studio) ClearSelection() { s.selected = "" }

// --- scene mutations ---

func (s *Studio) nextSeq() int {
	s.seq++
	return s.seq
}

// AddBody instantiates a body template, placing it at position when given
// or at a randomized drop point above the ground plane otherwise. The new
// body is auto-selected. Returns the new body id.
func (s *Studio) AddBody(tpl catalog.BodyTemplate, position *rl.Vector3) string {
	id := fmt.Sprintf("%s-%d", tpl.ID, s.nextSeq())
	b := tpl.Instantiate(id)
	if position != nil {
		b.Position = *position
	} else {
		b.Position = rl.Vector3{
			X: s.rng.Float32()*6 - 3,
			Y: 4 + s.rng.Float32()*3,
			Z: s.rng.Float32()*6 - 3,
		}
	}
	if err := s.world.AddBody(b); err != nil {
		log.Printf("Studio: add body: %v", err)
		return ""
	}
	s.commit(b)
	s.selected = id
	s.notifyObjects()
	return id
}

// AddSystem replaces the current bodies and constraints wholesale with the
// template's content ("load system" semantics, not a merge). Template-local
// ids are re-keyed so loading the same template twice never collides.
func (s *Studio) AddSystem(tpl catalog.SystemTemplate) {
	bodies, constraints := tpl.Instantiate()

	cfg := s.world.Config()
	if tpl.World != nil {
		cfg = *tpl.World
	}
	next := sim.NewWorld(cfg)

	rekey := make(map[string]string, len(bodies))
	for _, b := range bodies {
		fresh := fmt.Sprintf("%s-%d", b.ID, s.nextSeq())
		rekey[b.ID] = fresh
		b.ID = fresh
		if err := next.AddBody(b); err != nil {
			log.Printf("Studio: load system %s: %v", tpl.ID, err)
			return
		}
	}
	for _, c := range constraints {
		c.ID = fmt.Sprintf("%s-%d", c.ID, s.nextSeq())
		c.BodyA = rekey[c.BodyA]
		c.BodyB = rekey[c.BodyB]
		if err := next.AddConstraint(c); err != nil {
			log.Printf("Studio: load system %s: %v", tpl.ID, err)
			return
		}
	}

	s.installWorld(next)
	s.selected = ""
	s.resetRunState()
	s.commitAll()
	s.notifyObjects()
	s.SimulationChanged.emit(s.state)
}

// UpdateBodyProperty applies a partial update to one body field. Unknown
// ids and keys are logged no-ops; cross-field consistency is not validated,
// the world re-derives collision geometry from the new values on the next
// step.
func (s *Studio) UpdateBodyProperty(id, key string, value any) {
	b := s.world.Body(id)
	if b == nil {
		log.Printf("Studio: update %q on unknown body %s", key, id)
		return
	}

	ok := true
	switch key {
	case "position":
		b.Position, ok = asVec(value)
	case "rotation":
		b.Rotation, ok = asVec(value)
	case "velocity":
		b.Velocity, ok = asVec(value)
	case "angularVelocity":
		b.AngularVelocity, ok = asVec(value)
	case "size":
		b.Size, ok = asVec(value)
	case "mass":
		var m float32
		if m, ok = asFloat(value); ok && m >= 0 {
			b.Mass = m
		}
	case "friction":
		var f float32
		if f, ok = asFloat(value); ok {
			b.Material.Friction = clamp01(f)
		}
	case "restitution":
		var r float32
		if r, ok = asFloat(value); ok {
			b.Material.Restitution = clamp01(r)
		}
	case "color":
		var c rl.Color
		if c, ok = value.(rl.Color); ok {
			b.Color = c
		}
	case "shape":
		switch v := value.(type) {
		case sim.Shape:
			b.Shape = v
		case string:
			b.Shape = sim.Shape(v)
		default:
			ok = false
		}
	default:
		log.Printf("Studio: unknown body property %q", key)
		return
	}
	if !ok {
		log.Printf("Studio: bad value for %q on %s", key, id)
		return
	}

	// Edits made before the simulation ran become part of the committed
	// initial transforms, so reset returns to what the user set up.
	if !s.state.Running && s.state.CurrentTime == 0 {
		s.commit(b)
	}
	s.notifyObjects()
}

// DeleteObject removes a body and cascades removal of every constraint that
// references it. Unknown ids are a logged no-op.
func (s *Studio) DeleteObject(id string) {
	if s.world.Body(id) == nil {
		log.Printf("Studio: delete unknown body %s", id)
		return
	}
	s.world.RemoveBody(id)
	delete(s.committed, id)
	if s.selected == id {
		s.selected = ""
	}
	s.notifyObjects()
}

// CloneObject duplicates a body under a new id at an offset position.
// Constraints attached to the original are not cloned. Returns the new id,
// or "" if the source does not exist.
func (s *Studio) CloneObject(id string) string {
	src := s.world.Body(id)
	if src == nil {
		log.Printf("Studio: clone unknown body %s", id)
		return ""
	}
	clone := src.Clone()
	clone.ID = fmt.Sprintf("%s-%d", src.ID, s.nextSeq())
	clone.Position = rl.Vector3Add(clone.Position, rl.Vector3{X: 1.5, Y: 0.5})
	if err := s.world.AddBody(clone); err != nil {
		log.Printf("Studio: clone body: %v", err)
		return ""
	}
	s.commit(clone)
	s.selected = clone.ID
	s.notifyObjects()
	return clone.ID
}

// ClearScene empties bodies, constraints and selection atomically.
func (s *Studio) ClearScene() {
	s.installWorld(sim.NewWorld(s.world.Config()))
	s.selected = ""
	s.committed = make(map[string]committedTransform)
	s.resetRunState()
	s.notifyObjects()
	s.SimulationChanged.emit(s.state)
}

// --- simulation control ---

// Start runs the simulation until Stop or Pause.
func (s *Studio) Start() {
	if s.state.Running && !s.state.Paused {
		return
	}
	s.state.Running = true
	s.state.Paused = false
	s.state.Error = ""
	s.SimulationChanged.emit(s.state)
}

// Resume continues a paused simulation.
func (s *Studio) Resume() {
	if !s.state.Paused {
		return
	}
	s.Start()
}

// Pause suspends stepping but keeps the run state.
func (s *Studio) Pause() {
	if !s.state.Running || s.state.Paused {
		return
	}
	s.state.Paused = true
	s.SimulationChanged.emit(s.state)
}

// Stop halts the simulation without restoring transforms. Safe mid-step.
func (s *Studio) Stop() {
	s.state.Running = false
	s.state.Paused = false
	s.accumulator = 0
	s.SimulationChanged.emit(s.state)
}

// StepOnce advances exactly one fixed timestep, also while paused or idle.
func (s *Studio) StepOnce() {
	s.performStep()
}

// Reset stops the simulation, discards accumulated time and restores every
// body to its last-committed transform.
func (s *Studio) Reset() {
	s.resetRunState()
	for id, ct := range s.committed {
		b := s.world.Body(id)
		if b == nil {
			continue
		}
		b.Position = ct.position
		b.Rotation = ct.rotation
		b.Velocity = ct.velocity
		b.AngularVelocity = ct.angularVelocity
	}
	s.SimulationChanged.emit(s.state)
	s.notifyObjects()
}

func (s *Studio) resetRunState() {
	s.state.Running = false
	s.state.Paused = false
	s.state.CurrentTime = 0
	s.state.TotalSteps = 0
	s.state.Error = ""
	s.state.TimeStep = s.world.Config().Timestep
	s.accumulator = 0
}

// Advance feeds wall-clock frame time into the fixed-step accumulator and
// performs zero or one simulation step. Call once per scheduler tick.
func (s *Studio) Advance(frameDt float32) {
	if !s.state.Running || s.state.Paused {
		return
	}
	s.accumulator += frameDt
	if s.accumulator > maxFrameLag {
		s.accumulator = maxFrameLag
	}
	dt := s.world.Config().Timestep
	if s.accumulator >= dt {
		s.accumulator -= dt
		s.performStep()
	}
}

func (s *Studio) performStep() {
	if err := s.world.Step(); err != nil {
		// Never clamp silently: surface the failure and pause a live run.
		// The failed step contributes no simulated time.
		log.Printf("Studio: step failed: %v", err)
		s.state.Paused = s.state.Running
		s.state.Error = err.Error()
		s.SimulationChanged.emit(s.state)
		return
	}
	s.state.CurrentTime += s.world.Config().Timestep
	s.state.TotalSteps++

	for _, b := range s.world.Bodies() {
		if b.Static() {
			continue
		}
		s.BodyMoved.emit(BodyTransform{ID: b.ID, Position: b.Position, Rotation: b.Rotation})
	}
}

// --- commit bookkeeping ---

func (s *Studio) commit(b *sim.Body) {
	s.committed[b.ID] = committedTransform{
		position:        b.Position,
		rotation:        b.Rotation,
		velocity:        b.Velocity,
		angularVelocity: b.AngularVelocity,
	}
}

func (s *Studio) commitAll() {
	s.committed = make(map[string]committedTransform)
	for _, b := range s.world.Bodies() {
		s.commit(b)
	}
}

func (s *Studio) notifyObjects() {
	s.ObjectsChanged.emit(ObjectsSnapshot{
		Bodies:      s.world.Bodies(),
		Constraints: s.world.Constraints(),
	})
}

// --- conversion helpers ---

func asVec(v any) (rl.Vector3, bool) {
	switch val := v.(type) {
	case rl.Vector3:
		return val, true
	case [3]float32:
		return rl.Vector3{X: val[0], Y: val[1], Z: val[2]}, true
	}
	return rl.Vector3{}, false
}

func asFloat(v any) (float32, bool) {
	switch val := v.(type) {
	case float32:
		return val, true
	case float64:
		return float32(val), true
	case int:
		return float32(val), true
	}
	return 0, false
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
