// Package data bundles a small country boundary set and fact table so the
// service starts without external resources.
package data

import "embed"

//go:embed countries.geojson historical_facts.json
var FS embed.FS
