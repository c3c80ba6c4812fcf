package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gastos/internal/source"
	"gastos/internal/source/dir"
)

type recorder struct {
	mu    sync.Mutex
	names []string
	seen  chan string
}

func newRecorder() *recorder {
	return &recorder{seen: make(chan string, 64)}
}

func (r *recorder) Invalidate(name string) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	r.seen <- name
}

func waitFor(t *testing.T, r *recorder, want string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case got := <-r.seen:
			if got == want {
				return
			}
		case <-deadline:
			r.mu.Lock()
			defer r.mu.Unlock()
			t.Fatalf("no invalidation for %q, got %v", want, r.names)
		}
	}
}

func TestWatchInvalidatesChangedObjects(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, source.DetailDir), 0o755); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	stop, err := Watch(dir.New(root), rec, nil)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(root, source.RosterObject), []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec, source.RosterObject)

	if err := os.WriteFile(filepath.Join(root, source.DetailDir, "42.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec, source.DetailObject("42"))
}

func TestWatchPicksUpLateDetailDir(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	stop, err := Watch(dir.New(root), rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer stop()

	details := filepath.Join(root, source.DetailDir)
	if err := os.Mkdir(details, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to register the new directory.
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(details, "7.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec, source.DetailObject("7"))
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	stop, err := Watch(dir.New(root), rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, source.MetadataObject), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec, source.MetadataObject)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, n := range rec.names {
		if n == "notes.txt" {
			t.Fatalf("non-json file invalidated: %v", rec.names)
		}
	}
}

func TestWatchMissingRoot(t *testing.T) {
	if _, err := Watch(dir.New(filepath.Join(t.TempDir(), "nope")), newRecorder(), nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}
