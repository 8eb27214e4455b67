package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	if err := os.WriteFile(path, []byte("window:\n  width: 1920\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("width %d, want 1920", cfg.Window.Width)
	}
	if cfg.Window.Height != DefaultWindowHeight {
		t.Errorf("height %d not defaulted", cfg.Window.Height)
	}
	if cfg.Camera.MaxDistance != 60 {
		t.Errorf("camera defaults not applied: %+v", cfg.Camera)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != DefaultWindowWidth {
		t.Errorf("got %+v, want defaults", cfg.Window)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	if err := os.WriteFile(path, []byte("window: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.MinDistance = 10
	cfg.Camera.MaxDistance = 5
	if err := cfg.Validate(); err == nil {
		t.Error("inverted distance bounds accepted")
	}

	cfg = DefaultConfig()
	cfg.Camera.ZoomFactor = 0.9
	if err := cfg.Validate(); err == nil {
		t.Error("zoom factor below 1 accepted")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	cfg := DefaultConfig()
	cfg.Scene.Path = "demo.json"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", loaded, cfg)
	}
}
