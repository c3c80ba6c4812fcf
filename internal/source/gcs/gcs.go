package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gstorage "google.golang.org/api/storage/v1"

	"gastos/internal/source"
)

// Config selects the bucket and credentials. With no credentials the client
// falls back to Application Default Credentials.
type Config struct {
	Bucket             string
	Prefix             string
	ServiceAccountJSON string
	ServiceAccountFile string
}

// Client reads dataset objects published to a Cloud Storage bucket.
type Client struct {
	svc    *gstorage.Service
	bucket string
	prefix string
}

var _ source.Reader = (*Client)(nil)

// New creates a read-only Cloud Storage client.
func New(ctx context.Context, cfg Config, opts ...goption.ClientOption) (*Client, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("missing GCS bucket")
	}

	opts = append([]goption.ClientOption{goption.WithScopes(gstorage.DevstorageReadOnlyScope)}, opts...)
	switch {
	case strings.TrimSpace(cfg.ServiceAccountJSON) != "":
		slog.InfoContext(ctx, "Using inline JSON credentials for GCS")
		opts = append(opts, goption.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	case strings.TrimSpace(cfg.ServiceAccountFile) != "":
		data, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		slog.InfoContext(ctx, "Read GCS credentials file", "path", cfg.ServiceAccountFile, "size", len(data))
		opts = append(opts, goption.WithCredentialsJSON(data))
	default:
		slog.InfoContext(ctx, "Using application default credentials for GCS")
	}

	svc, err := gstorage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage service: %w", err)
	}
	return &Client{svc: svc, bucket: bucket, prefix: cleanPrefix(cfg.Prefix)}, nil
}

func (c *Client) Describe() string {
	return "gs://" + c.bucket + "/" + c.prefix
}

// Open downloads the object media. Missing objects map to source.ErrNotExist.
func (c *Client) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if c.svc == nil {
		return nil, errors.New("storage service not initialized")
	}
	if !source.ValidName(name) {
		return nil, fmt.Errorf("gcs %s: invalid object name: %w", name, source.ErrNotExist)
	}
	object := objectName(c.prefix, name)
	resp, err := c.svc.Objects.Get(c.bucket, object).Context(ctx).Download()
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("gcs %s/%s: %w", c.bucket, object, source.ErrNotExist)
		}
		return nil, fmt.Errorf("download gs://%s/%s: %w", c.bucket, object, err)
	}
	return resp.Body, nil
}

func cleanPrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return path.Clean(p) + "/"
}

func objectName(prefix, name string) string {
	return prefix + name
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return false
}
