package sim

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cellSize is the spatial hash cell edge; bodies in the same or a
// neighboring cell are candidate collision pairs.
const cellSize = 5.0

type cellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) cellKey {
	return cellKey{
		X: int(pos.X / cellSize),
		Y: int(pos.Y / cellSize),
		Z: int(pos.Z / cellSize),
	}
}

// Contact is an advisory collision record for one step. The world never
// changes its own behavior based on contacts; they exist for observers.
type Contact struct {
	BodyA string
	BodyB string
	Point rl.Vector3
}

// NonFiniteError reports a body whose transform left the finite range
// during a step. The step is treated as failed for that body.
type NonFiniteError struct {
	BodyID string
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("body %s has a non-finite transform", e.BodyID)
}

// World steps rigid bodies and constraints. It holds bodies by id; the
// structs themselves are shared with the orchestrator (arena + index, no
// cross-layer pointers leave this package).
type World struct {
	cfg WorldConfig

	bodies map[string]*Body
	order  []string // stable iteration order (insertion)

	constraints []*Constraint
	lockRef     map[string]rl.Vector3 // lock constraint id -> captured relative rotation

	grid     map[cellKey][]*Body
	contacts []Contact

	// OnContact, when set, is invoked once per contact pair per step.
	OnContact func(bodyA, bodyB string, point rl.Vector3)
}

// NewWorld creates a world with the given config. Invalid configs fall back
// to defaults field by field.
func NewWorld(cfg WorldConfig) *World {
	if cfg.Timestep <= 0 {
		cfg.Timestep = DefaultWorldConfig().Timestep
	}
	if cfg.Iterations < 1 {
		cfg.Iterations = DefaultWorldConfig().Iterations
	}
	return &World{
		cfg:     cfg,
		bodies:  make(map[string]*Body),
		grid:    make(map[cellKey][]*Body),
		lockRef: make(map[string]rl.Vector3),
	}
}

// Config returns the active world config.
func (w *World) Config() WorldConfig {
	return w.cfg
}

// SetConfig replaces the config. Takes effect on the next Step.
func (w *World) SetConfig(cfg WorldConfig) {
	if cfg.Timestep > 0 {
		w.cfg.Timestep = cfg.Timestep
	}
	if cfg.Iterations >= 1 {
		w.cfg.Iterations = cfg.Iterations
	}
	w.cfg.Gravity = cfg.Gravity
	w.cfg.Broadphase = cfg.Broadphase
	w.cfg.Solver = cfg.Solver
}

// AddBody inserts a body. The id must be unique within the world.
func (w *World) AddBody(b *Body) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, exists := w.bodies[b.ID]; exists {
		return fmt.Errorf("body %s already exists", b.ID)
	}
	w.bodies[b.ID] = b
	w.order = append(w.order, b.ID)
	return nil
}

// RemoveBody drops a body and every constraint referencing it.
func (w *World) RemoveBody(id string) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	delete(w.bodies, id)
	for i, ordered := range w.order {
		if ordered == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	kept := w.constraints[:0]
	for _, c := range w.constraints {
		if c.References(id) {
			delete(w.lockRef, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	w.constraints = kept
}

// Body returns the body with the given id, or nil.
func (w *World) Body(id string) *Body {
	return w.bodies[id]
}

// Bodies returns all bodies in insertion order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.bodies[id])
	}
	return out
}

// AddConstraint inserts a constraint. A constraint with a dangling body id
// is invalid and rejected here, not at step time.
func (w *World) AddConstraint(c *Constraint) error {
	if err := c.Validate(); err != nil {
		return err
	}
	a, okA := w.bodies[c.BodyA]
	b, okB := w.bodies[c.BodyB]
	if !okA {
		return fmt.Errorf("constraint %s: unknown body %s", c.ID, c.BodyA)
	}
	if !okB {
		return fmt.Errorf("constraint %s: unknown body %s", c.ID, c.BodyB)
	}
	for _, existing := range w.constraints {
		if existing.ID == c.ID {
			return fmt.Errorf("constraint %s already exists", c.ID)
		}
	}
	if c.Type == ConstraintLock {
		w.lockRef[c.ID] = rl.Vector3Subtract(b.Rotation, a.Rotation)
	}
	w.constraints = append(w.constraints, c)
	return nil
}

// RemoveConstraint drops a constraint by id. Unknown ids are a no-op.
func (w *World) RemoveConstraint(id string) {
	for i, c := range w.constraints {
		if c.ID == id {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			delete(w.lockRef, id)
			return
		}
	}
}

// Constraints returns the live constraints.
func (w *World) Constraints() []*Constraint {
	out := make([]*Constraint, len(w.constraints))
	copy(out, w.constraints)
	return out
}

// Contacts returns the contacts recorded by the most recent Step.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// Step advances the simulation by exactly one fixed timestep: integrate,
// detect and resolve collisions, project constraints, then verify every
// transform is still finite.
func (w *World) Step() error {
	dt := w.cfg.Timestep
	w.contacts = w.contacts[:0]

	// 1. Integrate dynamic bodies (semi-implicit Euler).
	for _, id := range w.order {
		b := w.bodies[id]
		if b.Static() {
			continue
		}
		b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.cfg.Gravity, dt))
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		b.Rotation = rl.Vector3Add(b.Rotation, rl.Vector3Scale(b.AngularVelocity, dt))

		// Framerate-independent angular damping.
		damping := float32(1.0) - 0.02*dt*60
		if damping < 0 {
			damping = 0
		}
		b.AngularVelocity = rl.Vector3Scale(b.AngularVelocity, damping)
	}

	// 2. Broadphase + narrowphase among dynamic bodies.
	dynamics, statics := w.split()
	for _, pair := range w.candidatePairs(dynamics) {
		w.resolvePair(pair[0], pair[1])
	}

	// 3. Dynamic vs static. Statics are few (ground, anchors); all-pairs is
	// fine here.
	for _, b := range dynamics {
		for _, s := range statics {
			w.resolvePair(b, s)
		}
	}

	// 4. Constraint projection.
	w.solveConstraints()

	// 5. Contact callbacks.
	if w.OnContact != nil {
		for _, c := range w.contacts {
			w.OnContact(c.BodyA, c.BodyB, c.Point)
		}
	}

	// 6. Finite check. Never silently clamped.
	for _, id := range w.order {
		if !w.bodies[id].Finite() {
			return &NonFiniteError{BodyID: id}
		}
	}
	return nil
}

func (w *World) split() (dynamics, statics []*Body) {
	for _, id := range w.order {
		b := w.bodies[id]
		if b.Static() {
			statics = append(statics, b)
		} else {
			dynamics = append(dynamics, b)
		}
	}
	return dynamics, statics
}

// candidatePairs returns unique dynamic body pairs from the configured
// broadphase. The grid strategy hashes positions into cells and pairs each
// body with its 3x3x3 neighborhood.
func (w *World) candidatePairs(dynamics []*Body) [][2]*Body {
	if w.cfg.Broadphase == BroadphaseNaive {
		var pairs [][2]*Body
		for i := 0; i < len(dynamics); i++ {
			for j := i + 1; j < len(dynamics); j++ {
				pairs = append(pairs, [2]*Body{dynamics[i], dynamics[j]})
			}
		}
		return pairs
	}

	for k := range w.grid {
		delete(w.grid, k)
	}
	for _, b := range dynamics {
		cell := posToCell(b.Position)
		w.grid[cell] = append(w.grid[cell], b)
	}

	seen := make(map[[2]string]bool)
	var pairs [][2]*Body
	for _, b := range dynamics {
		cell := posToCell(b.Position)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					key := cellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
					for _, other := range w.grid[key] {
						if other == b {
							continue
						}
						idA, idB := b.ID, other.ID
						if idA > idB {
							idA, idB = idB, idA
						}
						k := [2]string{idA, idB}
						if seen[k] {
							continue
						}
						seen[k] = true
						pairs = append(pairs, [2]*Body{w.bodies[idA], w.bodies[idB]})
					}
				}
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0].ID != pairs[j][0].ID {
			return pairs[i][0].ID < pairs[j][0].ID
		}
		return pairs[i][1].ID < pairs[j][1].ID
	})
	return pairs
}

func (w *World) recordContact(a, b *Body, point rl.Vector3) {
	w.contacts = append(w.contacts, Contact{BodyA: a.ID, BodyB: b.ID, Point: point})
}
