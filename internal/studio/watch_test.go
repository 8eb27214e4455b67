package studio

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherEmitsSceneFileChange(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSceneWatcher(dir)
	if err != nil {
		t.Fatalf("NewSceneWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("write scene: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event path %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for scene file write")
	}
}

func TestWatcherIgnoresNonSceneFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSceneWatcher(dir)
	if err != nil {
		t.Fatalf("NewSceneWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case got := <-w.Events:
		t.Errorf("unexpected event for %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseDuringBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSceneWatcher(dir)
	if err != nil {
		t.Fatalf("NewSceneWatcher: %v", err)
	}

	// More distinct files than the event buffer holds, with nobody
	// draining, so the forwarding goroutine is blocked mid-send when
	// Close arrives.
	for i := 0; i < 40; i++ {
		name := filepath.Join(dir, fmt.Sprintf("scene-%d.json", i))
		if err := os.WriteFile(name, []byte("{}"), 0644); err != nil {
			t.Fatalf("write scene: %v", err)
		}
	}
	time.Sleep(100 * time.Millisecond)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	// Events must end up closed so a consumer draining it unblocks.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel never closed after Close")
		}
	}
}
