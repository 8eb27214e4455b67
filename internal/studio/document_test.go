package studio

import (
	"encoding/json"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physstudio/internal/sim"
)

func TestExportImportRoundTrip(t *testing.T) {
	s := New()
	s.AddSystem(mustSystemTemplate(t, "pendulum"))
	s.SetCameraPose(rl.Vector3{X: 5, Y: 4, Z: 5}, rl.Vector3{Y: 1})
	visual := s.VisualConfig()
	visual.ShowDebug = true
	s.SetVisualConfig(visual)

	doc := s.Export()

	// Round-trip through actual JSON, not just the struct.
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseSceneDocument(data)
	if err != nil {
		t.Fatal(err)
	}

	other := New()
	if err := other.Import(parsed); err != nil {
		t.Fatalf("import: %v", err)
	}

	if got, want := len(other.Bodies()), len(s.Bodies()); got != want {
		t.Fatalf("%d bodies after import, want %d", got, want)
	}
	for _, b := range s.Bodies() {
		got := other.Body(b.ID)
		if got == nil {
			t.Fatalf("body %s missing after import", b.ID)
		}
		if got.Shape != b.Shape || got.Mass != b.Mass ||
			got.Position != b.Position || got.Size != b.Size ||
			got.Material != b.Material || got.Color != b.Color {
			t.Errorf("body %s differs after round trip", b.ID)
		}
	}
	if got, want := len(other.Constraints()), len(s.Constraints()); got != want {
		t.Fatalf("%d constraints after import, want %d", got, want)
	}
	if other.WorldConfig() != s.WorldConfig() {
		t.Error("world config differs after round trip")
	}
	if other.VisualConfig() != s.VisualConfig() {
		t.Error("visual config differs after round trip")
	}
	pos, target := other.CameraPose()
	if pos != (rl.Vector3{X: 5, Y: 4, Z: 5}) || target != (rl.Vector3{Y: 1}) {
		t.Error("camera pose not restored")
	}
}

func TestImportRejectsDanglingConstraint(t *testing.T) {
	s := New()
	s.AddBody(mustBodyTemplate(t, "sphere"), nil)
	before := len(s.Bodies())

	doc := s.Export()
	doc.Constraints = append(doc.Constraints, ConstraintDef{
		ID: "bad", Type: string(sim.ConstraintDistance),
		BodyA: s.Bodies()[0].ID, BodyB: "ghost", Distance: 1,
	})

	if err := s.Import(doc); err == nil {
		t.Fatal("import of dangling constraint succeeded")
	}
	if len(s.Bodies()) != before || len(s.Constraints()) != 0 {
		t.Error("failed import mutated the scene")
	}
}

func TestParseRejectsMissingBodies(t *testing.T) {
	if _, err := ParseSceneDocument([]byte(`{"constraints": []}`)); err == nil {
		t.Error("document without bodies accepted")
	}
	if _, err := ParseSceneDocument([]byte(`{not json`)); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestImportRejectsBadWorldConfig(t *testing.T) {
	s := New()
	s.AddBody(mustBodyTemplate(t, "box"), nil)
	doc := s.Export()
	doc.WorldConfig.Timestep = -1

	if err := s.Import(doc); err == nil {
		t.Fatal("negative timestep accepted")
	}
	if len(s.Bodies()) != 1 {
		t.Error("failed import mutated the scene")
	}
}

func TestImportEmitsImportedEvent(t *testing.T) {
	s := New()
	s.AddBody(mustBodyTemplate(t, "sphere"), nil)
	doc := s.Export()

	var seen bool
	s.SceneImported.Subscribe(func(d *SceneDocument) { seen = d == doc })
	if err := s.Import(doc); err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("scene-imported event not observed")
	}
}

func TestSaveLoadFile(t *testing.T) {
	s := New()
	s.AddSystem(mustSystemTemplate(t, "tower"))
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}

	other := New()
	if err := other.Load(path); err != nil {
		t.Fatal(err)
	}
	if got, want := len(other.Bodies()), len(s.Bodies()); got != want {
		t.Errorf("%d bodies after load, want %d", got, want)
	}
}

func TestColorNameRoundTrip(t *testing.T) {
	if lookupColor("Red") != rl.Red {
		t.Error("named color lookup failed")
	}
	custom := rl.NewColor(1, 2, 3, 4)
	name := lookupColorName(custom)
	if lookupColor(name) != custom {
		t.Errorf("hex fallback %q does not round trip", name)
	}
}
