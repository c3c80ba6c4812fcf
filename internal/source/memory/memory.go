package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"gastos/internal/source"
)

// Store keeps dataset objects in memory. Useful for tests and demos.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
	fails   map[string]error
	opens   map[string]int
}

var _ source.Reader = (*Store)(nil)

func New(objects map[string]string) *Store {
	s := &Store{
		objects: make(map[string][]byte, len(objects)),
		fails:   map[string]error{},
		opens:   map[string]int{},
	}
	for name, body := range objects {
		s.objects[name] = []byte(body)
	}
	return s
}

// Put stores or replaces an object.
func (s *Store) Put(name, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = []byte(body)
}

// Delete removes an object.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, name)
}

// Fail makes every Open of name return err until cleared with a nil err.
func (s *Store) Fail(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fails, name)
		return
	}
	s.fails[name] = err
}

// Opens returns how many times name was opened.
func (s *Store) Opens(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens[name]
}

// Open returns a reader over a copy of the stored object.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opens[name]++
	if err, ok := s.fails[name]; ok {
		return nil, err
	}
	body, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("memory %s: %w", name, source.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(body))), nil
}

func (s *Store) Describe() string { return "memory" }
