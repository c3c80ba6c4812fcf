package dir

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"gastos/internal/source"
)

func TestSourceOpen(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(name, content string) {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite("deputados.json", `[{"id":1}]`)
	mustWrite("detalhes/1.json", `{}`)

	s := New(root)
	ctx := context.Background()

	rc, err := s.Open(ctx, "deputados.json")
	if err != nil {
		t.Fatalf("open roster: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != `[{"id":1}]` {
		t.Fatalf("body = %q", body)
	}

	if rc, err := s.Open(ctx, source.DetailObject("1")); err != nil {
		t.Fatalf("open detail: %v", err)
	} else {
		rc.Close()
	}

	for _, name := range []string{"metadata.json", "../etc/passwd", "/abs", "detalhes", ""} {
		if _, err := s.Open(ctx, name); !source.IsNotExist(err) {
			t.Fatalf("%q: expected not-exist, got %v", name, err)
		}
	}
}

func TestSourceName(t *testing.T) {
	root := t.TempDir()
	s := New(root)
	if name, ok := s.Name(filepath.Join(root, "detalhes", "7.json")); !ok || name != "detalhes/7.json" {
		t.Fatalf("Name = %q, %v", name, ok)
	}
	if _, ok := s.Name(filepath.Join(filepath.Dir(root), "other.json")); ok {
		t.Fatalf("path outside root should not map")
	}
}
