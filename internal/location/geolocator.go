package location

import (
	"context"
	"errors"
	"fmt"

	"history-map/internal/types"
)

var errNoReportedPosition = errors.New("no position reported")

// Request carries what a geolocator may use to find the caller.
type Request struct {
	ClientIP string
	// Reported is the position the client supplied, if any.
	Reported *types.Coords
}

// Geolocator is a single-shot position capability.
type Geolocator interface {
	IsAvailable() bool
	CurrentPosition(ctx context.Context, req Request) (types.Coords, error)
}

// Unsupported is used when no geolocation capability is configured.
type Unsupported struct{}

func (Unsupported) IsAvailable() bool { return false }

func (Unsupported) CurrentPosition(context.Context, Request) (types.Coords, error) {
	return types.Coords{}, ErrUnsupportedCapability
}

// Reported trusts the position the client measured itself.
type Reported struct{}

func (Reported) IsAvailable() bool { return true }

func (Reported) CurrentPosition(_ context.Context, req Request) (types.Coords, error) {
	if req.Reported == nil {
		return types.Coords{}, errNoReportedPosition
	}
	if !req.Reported.Valid() {
		return types.Coords{}, fmt.Errorf("reported position out of range: %+v", *req.Reported)
	}
	return *req.Reported, nil
}

// IPLookup resolves an address to latitude and longitude.
type IPLookup interface {
	Lookup(ip string) (float64, float64, error)
}

// IP locates the caller from its network address.
type IP struct {
	lookup IPLookup
}

func NewIP(lookup IPLookup) *IP {
	return &IP{lookup: lookup}
}

func (g *IP) IsAvailable() bool { return g.lookup != nil }

func (g *IP) CurrentPosition(_ context.Context, req Request) (types.Coords, error) {
	lat, lon, err := g.lookup.Lookup(req.ClientIP)
	if err != nil {
		return types.Coords{}, err
	}
	return types.NewCoords(lat, lon), nil
}
