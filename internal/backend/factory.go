package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/source/dir"
	"gastos/internal/source/gcs"
	"gastos/internal/source/web"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case DirBackend:
		return f.createDirBackend(config)
	case HTTPBackend:
		return f.createHTTPBackend(config)
	case GCSBackend:
		return f.createGCSBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createDirBackend(config Config) (*BackendResult, error) {
	src := dir.New(config.DataDir)

	f.logger.Info("Initialized directory backend", "data_dir", src.Root())

	return &BackendResult{Reader: src, Dir: src.Root()}, nil
}

func (f *DefaultFactory) createHTTPBackend(config Config) (*BackendResult, error) {
	src, err := web.New(config.BaseURL, nil, config.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http backend: %w", err)
	}

	f.logger.Info("Initialized http backend", "base_url", src.Describe(), "timeout", config.FetchTimeout)

	return &BackendResult{Reader: src}, nil
}

func (f *DefaultFactory) createGCSBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gcs.New(ctx, gcs.Config{
		Bucket:             config.GCSBucket,
		Prefix:             config.GCSPrefix,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
		ServiceAccountFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
	}

	f.logger.Info("Initialized GCS backend", "location", cli.Describe())

	return &BackendResult{Reader: cli}, nil
}
