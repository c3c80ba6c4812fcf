package backend

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gastos/internal/config"
	"gastos/internal/source"
)

func TestBackendType(t *testing.T) {
	for _, bt := range GetBackendTypes() {
		if !bt.IsValid() {
			t.Errorf("%s should be valid", bt)
		}
	}
	if BackendType("sqlite").IsValid() {
		t.Error("sqlite should not be a valid backend type")
	}
	if got := GetBackendTypeStrings(); !reflect.DeepEqual(got, []string{"dir", "http", "gcs"}) {
		t.Errorf("GetBackendTypeStrings() = %v", got)
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataSource: "ftp"}); err == nil {
		t.Error("expected error for unknown source")
	}

	cfg, err := FromAppConfig(&config.Config{
		DataSource:   "http",
		DataBaseURL:  "https://example.org/data",
		FetchTimeout: 3 * time.Second,
		GCSPrefix:    "data",
	})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != HTTPBackend || cfg.BaseURL != "https://example.org/data" || cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FromAppConfig() = %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"dir ok", Config{Type: DirBackend, DataDir: "data"}, ""},
		{"dir missing", Config{Type: DirBackend}, "data directory is required"},
		{"http missing", Config{Type: HTTPBackend}, "base URL is required"},
		{"gcs missing", Config{Type: GCSBackend}, "GCS bucket is required"},
		{"unknown", Config{Type: "x"}, "invalid backend type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(nil)

	root := t.TempDir()
	res, err := factory.CreateBackend(ctx, Config{Type: DirBackend, DataDir: root})
	if err != nil {
		t.Fatalf("dir backend: %v", err)
	}
	if res.Dir != filepath.Clean(root) {
		t.Errorf("Dir = %q, want %q", res.Dir, root)
	}
	if got := source.Describe(res.Reader); !strings.HasPrefix(got, "dir:") {
		t.Errorf("Describe() = %q", got)
	}

	res, err = factory.CreateBackend(ctx, Config{Type: HTTPBackend, BaseURL: "https://example.org/data", FetchTimeout: time.Second})
	if err != nil {
		t.Fatalf("http backend: %v", err)
	}
	if res.Dir != "" {
		t.Errorf("http backend should not report a local dir, got %q", res.Dir)
	}
	if got := source.Describe(res.Reader); got != "https://example.org/data/" {
		t.Errorf("Describe() = %q", got)
	}

	if _, err := factory.CreateBackend(ctx, Config{Type: HTTPBackend, BaseURL: "ftp://example.org"}); err == nil {
		t.Error("expected error for ftp base url")
	}
	if _, err := factory.CreateBackend(ctx, Config{Type: GCSBackend}); err == nil {
		t.Error("expected error for gcs without bucket")
	}
}
