package catalog

import (
	"testing"

	"physstudio/internal/sim"
)

func TestSearchBodiesByName(t *testing.T) {
	results := SearchBodies("sphere")
	if len(results) == 0 {
		t.Fatal("no results for 'sphere'")
	}
	for _, r := range results {
		if r.Shape != sim.ShapeSphere {
			t.Errorf("unexpected match %s for 'sphere'", r.ID)
		}
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	if got, want := len(SearchSystems("")), len(Systems()); got != want {
		t.Errorf("empty query returned %d of %d systems", got, want)
	}
}

func TestSearchByCategoryTag(t *testing.T) {
	results := SearchSystems("classic")
	if len(results) == 0 {
		t.Fatal("no systems tagged classic")
	}
	for _, r := range results {
		if !hasCategory(r.Categories, "classic") {
			t.Errorf("%s matched 'classic' without the tag", r.ID)
		}
	}
}

func TestSystemTemplatesInternallyConsistent(t *testing.T) {
	for _, sys := range Systems() {
		ids := make(map[string]bool)
		for _, b := range sys.Bodies {
			if err := b.Validate(); err != nil {
				t.Errorf("%s: %v", sys.ID, err)
			}
			if ids[b.ID] {
				t.Errorf("%s: duplicate body id %s", sys.ID, b.ID)
			}
			ids[b.ID] = true
		}
		for _, c := range sys.Constraints {
			if err := c.Validate(); err != nil {
				t.Errorf("%s: %v", sys.ID, err)
			}
			if !ids[c.BodyA] || !ids[c.BodyB] {
				t.Errorf("%s: constraint %s references missing body", sys.ID, c.ID)
			}
		}
	}
}

func TestInstantiateDoesNotAliasTemplate(t *testing.T) {
	tpl, ok := SystemByID("pendulum")
	if !ok {
		t.Fatal("pendulum template missing")
	}
	bodies, _ := tpl.Instantiate()
	bodies[0].Position.X = 999

	fresh, _ := SystemByID("pendulum")
	if fresh.Bodies[0].Position.X == 999 {
		t.Error("instantiated body aliases catalog data")
	}
}

func TestBodyTemplateInstantiate(t *testing.T) {
	tpl, ok := BodyByID("heavy-sphere")
	if !ok {
		t.Fatal("heavy-sphere template missing")
	}
	b := tpl.Instantiate("heavy-sphere-1")
	if b.ID != "heavy-sphere-1" {
		t.Errorf("id %s, want heavy-sphere-1", b.ID)
	}
	if b.Mass != tpl.Mass || b.Shape != tpl.Shape {
		t.Error("template fields not applied")
	}
}
