package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := New(filepath.Join(tmpDir, "config.yaml"), 100*time.Millisecond, func(string) {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if w == nil {
		t.Fatal("New() returned nil watcher")
	}
}

func TestNewInvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/that/does/not/exist/config.yaml", 100*time.Millisecond, func(string) {})
	if err == nil {
		t.Fatal("New() should return error for invalid path")
	}
}

func TestWatcherDebouncesWrites(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "config.yaml")

	var mu sync.Mutex
	var calls []string

	w, err := New(target, 50*time.Millisecond, func(p string) {
		mu.Lock()
		calls = append(calls, p)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("log:\n  level: debug\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// unrelated file in the same directory
	os.WriteFile(filepath.Join(tmpDir, "other.txt"), []byte("x"), 0644)

	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("Expected 1 debounced callback, got %d", len(calls))
	}
	if calls[0] != target {
		t.Errorf("Expected callback for %s, got %s", target, calls[0])
	}
}

func TestWatcherStartTwice(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "config.yaml"), 10*time.Millisecond, func(string) {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(); err == nil {
		t.Error("Second Start() should fail")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "config.yaml"), 10*time.Millisecond, func(string) {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}
	if err := w.Start(); err == nil {
		t.Error("Start() after Close() should fail")
	}
}
