// Package resource reads the static resources the map is built from.
package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"history-map/data"
)

const embedPrefix = "embed:"

// ErrEmptyLocation is returned when no resource location is configured.
var ErrEmptyLocation = errors.New("resource location is empty")

// Fetcher reads resources from the embedded bundle, the filesystem or HTTP.
type Fetcher struct {
	httpClient *http.Client
	embedded   fs.FS
	logger     *slog.Logger
}

// NewFetcher creates a fetcher backed by the bundled data set.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return NewFetcherWithFS(&http.Client{}, data.FS, logger)
}

// NewFetcherWithFS creates a fetcher with a custom HTTP client and bundle.
func NewFetcherWithFS(httpClient *http.Client, embedded fs.FS, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		embedded:   embedded,
		logger:     logger.With("component", "resource-fetcher"),
	}
}

// Fetch returns the full content of the resource at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, ErrEmptyLocation
	case strings.HasPrefix(location, embedPrefix):
		name := strings.TrimPrefix(location, embedPrefix)
		b, err := fs.ReadFile(f.embedded, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
		return b, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return f.fetchHTTP(ctx, location)
	default:
		b, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", location, err)
		}
		return b, nil
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	f.logger.Debug("fetching resource", "url", url)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		f.logger.Error("resource fetch returned error",
			"url", url,
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return b, nil
}
