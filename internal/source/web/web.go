package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gastos/internal/source"
)

// Source fetches dataset objects from a static host, e.g. the published
// GitHub Pages site serving docs/data.
type Source struct {
	base   *url.URL
	client *http.Client
}

var _ source.Reader = (*Source)(nil)

// New parses baseURL (http or https) and returns a source rooted at it.
// A nil client selects a pooled client with the given timeout.
func New(baseURL string, client *http.Client, timeout time.Duration) (*Source, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url scheme %q: must be http or https", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("invalid base url: missing host")
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = newHTTPClientWithPooling(timeout)
	}
	return &Source{base: u, client: client}, nil
}

func (s *Source) Describe() string { return s.base.String() }

// URL resolves an object name against the base URL.
func (s *Source) URL(name string) string {
	return s.base.ResolveReference(&url.URL{Path: name}).String()
}

// Open performs a GET. 404 and 410 map to source.ErrNotExist; every other
// non-2xx status is an error carrying the status.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !source.ValidName(name) {
		return nil, fmt.Errorf("web %s: invalid object name: %w", name, source.ErrNotExist)
	}
	target := s.URL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		drainAndClose(resp.Body)
		return nil, fmt.Errorf("get %s: status %d: %w", target, resp.StatusCode, source.ErrNotExist)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		drainAndClose(resp.Body)
		return nil, fmt.Errorf("get %s: unexpected status %d", target, resp.StatusCode)
	}
	return resp.Body, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	_ = body.Close()
}

// newHTTPClientWithPooling keeps connections to the static host warm; most
// page loads fetch two or three objects from it.
func newHTTPClientWithPooling(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}
