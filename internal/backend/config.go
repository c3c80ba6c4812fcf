package backend

import (
	"fmt"

	"gastos/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataSource)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataSource)
	}

	return Config{
		Type: backendType,

		DataDir: appConfig.DataDir,

		BaseURL:      appConfig.DataBaseURL,
		FetchTimeout: appConfig.FetchTimeout,

		GCSBucket:                appConfig.GCSBucket,
		GCSPrefix:                appConfig.GCSPrefix,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case DirBackend:
		if c.DataDir == "" {
			return fmt.Errorf("data directory is required for dir backend")
		}
	case HTTPBackend:
		if c.BaseURL == "" {
			return fmt.Errorf("base URL is required for http backend")
		}
	case GCSBackend:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS bucket is required for gcs backend")
		}
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{DirBackend, HTTPBackend, GCSBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	strings := make([]string, len(types))
	for i, t := range types {
		strings[i] = t.String()
	}
	return strings
}
