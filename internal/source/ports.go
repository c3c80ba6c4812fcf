// Package source defines where dataset objects are read from. Adapters live in
// the sub-packages: dir (local folder), web (static HTTP host), gcs (Cloud
// Storage bucket) and memory (tests and seeding).
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Object names used by the dashboard, relative to the dataset root.
const (
	RosterObject   = "deputados.json"
	MetadataObject = "metadata.json"
	DetailDir      = "detalhes"
)

// ErrNotExist is returned (wrapped) when an object is missing from a source.
// It matches fs.ErrNotExist as well.
var ErrNotExist = fmt.Errorf("object does not exist: %w", fs.ErrNotExist)

// Ports for dataset adapters.
type (
	// Reader opens one dataset object by slash-separated name.
	Reader interface {
		Open(ctx context.Context, name string) (io.ReadCloser, error)
	}

	// Describer reports a human readable location for logs.
	Describer interface {
		Describe() string
	}
)

// DetailObject returns the object name of a legislator's detail document.
func DetailObject(id string) string {
	return DetailDir + "/" + id + ".json"
}

// IsNotExist reports whether err means the object is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// ValidName reports whether name is a clean relative object name.
func ValidName(name string) bool {
	return fs.ValidPath(name) && name != "."
}

// Describe returns r's location when it implements Describer.
func Describe(r Reader) string {
	if d, ok := r.(Describer); ok {
		return d.Describe()
	}
	return fmt.Sprintf("%T", r)
}
