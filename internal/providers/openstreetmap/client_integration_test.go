//go:build integration

package openstreetmap

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func TestClient_Lookup_Integration(t *testing.T) {
	// Test coordinates: Paris
	lat := 48.8566
	lon := 2.3522

	client := NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Logf("Making API call to OpenStreetMap Nominatim API...")
	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	resp, err := client.Lookup(testContext(t), lat, lon)
	if err != nil {
		t.Fatalf("Failed to get location data: %v", err)
	}

	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if resp.Address.Country != "France" {
		t.Errorf("Country = %q, want France", resp.Address.Country)
	}
	if resp.Address.Locality() == "" {
		t.Error("Locality is empty")
	}
	if resp.DisplayName == "" {
		t.Error("DisplayName is empty")
	}
}
