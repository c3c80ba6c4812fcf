package backend

import (
	"context"
	"time"

	"gastos/internal/source"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the dataset reader and optional cleanup function
type BackendResult struct {
	Reader source.Reader
	// Dir is the local data directory when Type is DirBackend, empty otherwise.
	Dir     string
	Cleanup CleanupFunc
}

// Factory creates dataset readers based on configuration
type Factory interface {
	// CreateBackend creates a reader for the configured dataset source
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Local directory
	DataDir string

	// Static HTTP host
	BaseURL      string
	FetchTimeout time.Duration

	// Google Cloud Storage
	GCSBucket                string
	GCSPrefix                string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
}

// BackendType represents where the published dataset is read from
type BackendType string

const (
	DirBackend  BackendType = "dir"
	HTTPBackend BackendType = "http"
	GCSBackend  BackendType = "gcs"
)

// IsValid checks if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case DirBackend, HTTPBackend, GCSBackend:
		return true
	default:
		return false
	}
}

// String returns the string representation of the backend type
func (bt BackendType) String() string {
	return string(bt)
}
