package openstreetmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Reverse/
// Sample request: https://nominatim.openstreetmap.org/reverse?lat=48.85&lon=2.35&format=json&zoom=10
const (
	baseURL   = "https://nominatim.openstreetmap.org/reverse"
	userAgent = "history-map/1.0"
	// city level detail
	reverseZoom = "10"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return NewClientWithBaseURL(&http.Client{}, baseURL, logger)
}

// NewClientWithBaseURL creates a client against a custom endpoint
func NewClientWithBaseURL(httpClient *http.Client, base string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		logger:     logger.With("component", "openstreetmap-client"),
	}
}

// Lookup reverse geocodes a coordinate into a named place.
func (c *Client) Lookup(ctx context.Context, latitude, longitude float64) (*LookupAPIResponse, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", fmt.Sprintf("%f", latitude))
	q.Set("lon", fmt.Sprintf("%f", longitude))
	q.Set("format", "json")
	q.Set("zoom", reverseZoom)
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching OpenStreetMap place",
		"latitude", latitude,
		"longitude", longitude,
		"url", u.String(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	// Nominatim usage policy requires an identifying agent
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch OpenStreetMap data",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenStreetMap API returned error",
			"status_code", resp.StatusCode,
			"latitude", latitude,
			"longitude", longitude,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse the JSON response
	var apiResp LookupAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if apiResp.Error != "" {
		return nil, fmt.Errorf("reverse lookup failed: %s", apiResp.Error)
	}

	return &apiResp, nil
}
