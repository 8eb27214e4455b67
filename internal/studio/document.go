package studio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

// --- JSON types ---

// SceneDocument is the serialized form of the full studio state.
type SceneDocument struct {
	Bodies      []BodyDef       `json:"bodies"`
	Constraints []ConstraintDef `json:"constraints,omitempty"`

	WorldConfig  WorldConfigDef  `json:"worldConfig"`
	VisualConfig VisualConfigDef `json:"visualConfig"`

	CameraPosition [3]float32 `json:"cameraPosition"`
	CameraTarget   [3]float32 `json:"cameraTarget"`

	Timestamp string `json:"timestamp"`
}

type BodyDef struct {
	ID              string       `json:"id"`
	Shape           string       `json:"shape"`
	Position        [3]float32   `json:"position"`
	Rotation        *[3]float32  `json:"rotation,omitempty"`
	Velocity        *[3]float32  `json:"velocity,omitempty"`
	AngularVelocity *[3]float32  `json:"angularVelocity,omitempty"`
	Mass            float32      `json:"mass"`
	Material        *MaterialDef `json:"material,omitempty"`
	Size            [3]float32   `json:"size"`
	Color           string       `json:"color,omitempty"`
}

type MaterialDef struct {
	Friction    float32 `json:"friction"`
	Restitution float32 `json:"restitution"`
}

type ConstraintDef struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	BodyA    string      `json:"bodyA"`
	BodyB    string      `json:"bodyB"`
	PivotA   *[3]float32 `json:"pivotA,omitempty"`
	PivotB   *[3]float32 `json:"pivotB,omitempty"`
	Distance float32     `json:"distance,omitempty"`
	Axis     *[3]float32 `json:"axis,omitempty"`
}

type WorldConfigDef struct {
	Gravity    [3]float32 `json:"gravity"`
	Timestep   float32    `json:"timestep"`
	Iterations int        `json:"iterations"`
	Broadphase string     `json:"broadphase,omitempty"`
	Solver     string     `json:"solver,omitempty"`
}

type VisualConfigDef struct {
	ShowDebug     bool   `json:"showDebug"`
	EnableShadows bool   `json:"enableShadows"`
	ShowGizmos    bool   `json:"showGizmos"`
	AutoRotate    bool   `json:"autoRotate"`
	Quality       string `json:"quality"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	var r, g, b, a uint8
	if n, err := fmt.Sscanf(name, "#%02x%02x%02x%02x", &r, &g, &b, &a); err == nil && n == 4 {
		return rl.NewColor(r, g, b, a)
	}
	return rl.White
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- vector helpers ---

func vecOut(v rl.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func vecOutOpt(v rl.Vector3) *[3]float32 {
	if v == (rl.Vector3{}) {
		return nil
	}
	arr := vecOut(v)
	return &arr
}

func vecIn(a [3]float32) rl.Vector3 { return rl.Vector3{X: a[0], Y: a[1], Z: a[2]} }

func vecInOpt(a *[3]float32) rl.Vector3 {
	if a == nil {
		return rl.Vector3{}
	}
	return vecIn(*a)
}

// --- Export ---

// Export serializes the full studio state into a scene document. The
// document is a pure snapshot; the studio keeps no reference to it.
func (s *Studio) Export() *SceneDocument {
	doc := &SceneDocument{
		Bodies:         []BodyDef{},
		CameraPosition: vecOut(s.cameraPosition),
		CameraTarget:   vecOut(s.cameraTarget),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}

	cfg := s.world.Config()
	doc.WorldConfig = WorldConfigDef{
		Gravity:    vecOut(cfg.Gravity),
		Timestep:   cfg.Timestep,
		Iterations: cfg.Iterations,
		Broadphase: cfg.Broadphase,
		Solver:     cfg.Solver,
	}
	doc.VisualConfig = VisualConfigDef{
		ShowDebug:     s.visual.ShowDebug,
		EnableShadows: s.visual.EnableShadows,
		ShowGizmos:    s.visual.ShowGizmos,
		AutoRotate:    s.visual.AutoRotate,
		Quality:       s.visual.Quality,
	}

	for _, b := range s.world.Bodies() {
		mat := MaterialDef{Friction: b.Material.Friction, Restitution: b.Material.Restitution}
		doc.Bodies = append(doc.Bodies, BodyDef{
			ID:              b.ID,
			Shape:           string(b.Shape),
			Position:        vecOut(b.Position),
			Rotation:        vecOutOpt(b.Rotation),
			Velocity:        vecOutOpt(b.Velocity),
			AngularVelocity: vecOutOpt(b.AngularVelocity),
			Mass:            b.Mass,
			Material:        &mat,
			Size:            vecOut(b.Size),
			Color:           lookupColorName(b.Color),
		})
	}
	for _, c := range s.world.Constraints() {
		doc.Constraints = append(doc.Constraints, ConstraintDef{
			ID:       c.ID,
			Type:     string(c.Type),
			BodyA:    c.BodyA,
			BodyB:    c.BodyB,
			PivotA:   vecOutOpt(c.PivotA),
			PivotB:   vecOutOpt(c.PivotB),
			Distance: c.Distance,
			Axis:     vecOutOpt(c.Axis),
		})
	}

	s.SceneExported.emit(doc)
	return doc
}

// --- Import ---

// ParseSceneDocument decodes and schema-checks a scene document. A document
// without a bodies array is malformed even when the scene is empty.
func ParseSceneDocument(data []byte) (*SceneDocument, error) {
	var doc SceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if doc.Bodies == nil {
		return nil, fmt.Errorf("parse scene: missing bodies array")
	}
	return &doc, nil
}

// Import replaces the entire scene with the document's content. The whole
// document is validated into a fresh world first; on any failure the prior
// scene is left untouched.
func (s *Studio) Import(doc *SceneDocument) error {
	cfg := sim.WorldConfig{
		Gravity:    vecIn(doc.WorldConfig.Gravity),
		Timestep:   doc.WorldConfig.Timestep,
		Iterations: doc.WorldConfig.Iterations,
		Broadphase: doc.WorldConfig.Broadphase,
		Solver:     doc.WorldConfig.Solver,
	}
	if cfg.Broadphase == "" {
		cfg.Broadphase = sim.BroadphaseGrid
	}
	if cfg.Solver == "" {
		cfg.Solver = sim.SolverImpulse
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("import scene: %w", err)
	}

	next := sim.NewWorld(cfg)
	for _, def := range doc.Bodies {
		b := sim.NewBody(def.ID, sim.Shape(def.Shape))
		b.Position = vecIn(def.Position)
		b.Rotation = vecInOpt(def.Rotation)
		b.Velocity = vecInOpt(def.Velocity)
		b.AngularVelocity = vecInOpt(def.AngularVelocity)
		b.Mass = def.Mass
		b.Size = vecIn(def.Size)
		if def.Material != nil {
			b.Material = sim.Material{
				Friction:    def.Material.Friction,
				Restitution: def.Material.Restitution,
			}
		}
		if def.Color != "" {
			b.Color = lookupColor(def.Color)
		}
		if err := next.AddBody(b); err != nil {
			return fmt.Errorf("import scene: body %s: %w", def.ID, err)
		}
	}
	for _, def := range doc.Constraints {
		c := &sim.Constraint{
			ID:       def.ID,
			Type:     sim.ConstraintType(def.Type),
			BodyA:    def.BodyA,
			BodyB:    def.BodyB,
			PivotA:   vecInOpt(def.PivotA),
			PivotB:   vecInOpt(def.PivotB),
			Distance: def.Distance,
			Axis:     vecInOpt(def.Axis),
		}
		if err := next.AddConstraint(c); err != nil {
			return fmt.Errorf("import scene: constraint %s: %w", def.ID, err)
		}
	}

	// Validation passed. Commit the swap.
	s.installWorld(next)
	s.visual = VisualConfig{
		ShowDebug:     doc.VisualConfig.ShowDebug,
		EnableShadows: doc.VisualConfig.EnableShadows,
		ShowGizmos:    doc.VisualConfig.ShowGizmos,
		AutoRotate:    doc.VisualConfig.AutoRotate,
		Quality:       doc.VisualConfig.Quality,
	}
	s.cameraPosition = vecIn(doc.CameraPosition)
	s.cameraTarget = vecIn(doc.CameraTarget)
	s.selected = ""
	s.resetRunState()
	s.commitAll()

	s.SceneImported.emit(doc)
	s.notifyObjects()
	s.SimulationChanged.emit(s.state)
	return nil
}

// --- Files ---

// Save exports the scene to a JSON file.
func (s *Studio) Save(path string) error {
	doc := s.Export()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// Load reads a scene file and imports it atomically.
func (s *Studio) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	doc, err := ParseSceneDocument(data)
	if err != nil {
		return err
	}
	return s.Import(doc)
}
