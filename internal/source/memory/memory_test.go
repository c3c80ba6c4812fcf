package memory

import (
	"context"
	"errors"
	"io"
	"testing"

	"gastos/internal/source"
)

func TestStoreOpenPutDelete(t *testing.T) {
	s := New(map[string]string{"deputados.json": "[]"})
	ctx := context.Background()

	rc, err := s.Open(ctx, "deputados.json")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "[]" {
		t.Fatalf("body = %q", body)
	}

	if _, err := s.Open(ctx, "metadata.json"); !source.IsNotExist(err) {
		t.Fatalf("expected not-exist, got %v", err)
	}

	s.Put("metadata.json", "{}")
	if _, err := s.Open(ctx, "metadata.json"); err != nil {
		t.Fatalf("open after put: %v", err)
	}
	s.Delete("metadata.json")
	if _, err := s.Open(ctx, "metadata.json"); !source.IsNotExist(err) {
		t.Fatalf("expected not-exist after delete, got %v", err)
	}
	if s.Opens("metadata.json") != 3 {
		t.Fatalf("opens = %d", s.Opens("metadata.json"))
	}
}

func TestStoreFail(t *testing.T) {
	s := New(map[string]string{"deputados.json": "[]"})
	boom := errors.New("boom")
	s.Fail("deputados.json", boom)
	if _, err := s.Open(context.Background(), "deputados.json"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	s.Fail("deputados.json", nil)
	if _, err := s.Open(context.Background(), "deputados.json"); err != nil {
		t.Fatalf("expected success after clearing failure, got %v", err)
	}
}
