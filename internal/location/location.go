// Package location finds the user and keeps the single "You are here"
// marker on the map.
package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"history-map/internal/providers/openstreetmap"
	"history-map/internal/types"
	"history-map/internal/viewport"
)

const (
	// LocateZoom is the zoom level used after a successful locate.
	LocateZoom  = 13
	MarkerIcon  = "pulsing-icon"
	MarkerPopup = "You are here"
)

var (
	ErrGeolocation           = errors.New("unable to retrieve your location")
	ErrUnsupportedCapability = errors.New("geolocation is not supported")
	ErrNoMarker              = errors.New("no marker to remove")
)

// TimezoneProvider resolves an IANA timezone for a coordinate
type TimezoneProvider interface {
	GetTimezone(latitude, longitude float64) (string, error)
}

// ReverseGeocodeProvider names the place at a coordinate
type ReverseGeocodeProvider interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

// Option configures optional marker enrichment.
type Option func(*Service)

func WithTimezone(tz TimezoneProvider) Option {
	return func(s *Service) { s.timezone = tz }
}

func WithReverseGeocoder(rg ReverseGeocodeProvider) Option {
	return func(s *Service) { s.reverse = rg }
}

// Service is the location adapter. It is not safe for concurrent use; the
// session serializes access.
type Service struct {
	geolocator Geolocator
	view       *viewport.Viewport
	timezone   TimezoneProvider
	reverse    ReverseGeocodeProvider
	markerID   int
	logger     *slog.Logger
}

func NewService(geolocator Geolocator, view *viewport.Viewport, logger *slog.Logger, opts ...Option) *Service {
	if geolocator == nil {
		geolocator = Unsupported{}
	}
	s := &Service{
		geolocator: geolocator,
		view:       view,
		logger:     logger.With("component", "location-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fix is a resolved user position with its optional place details.
type Fix struct {
	Position types.Coords
	Place    types.LocationInfo
}

// Locate asks for the current position once. On success the view moves to
// it and the previous marker is replaced by a new one. On failure nothing
// changes.
func (s *Service) Locate(ctx context.Context, req Request) (viewport.Marker, error) {
	fix, err := s.Resolve(ctx, req)
	if err != nil {
		return viewport.Marker{}, err
	}
	return s.Place(fix), nil
}

// Resolve asks the geolocator for the current position and describes it.
// It does not touch the view, so it may run without holding the session.
func (s *Service) Resolve(ctx context.Context, req Request) (Fix, error) {
	if !s.geolocator.IsAvailable() {
		return Fix{}, ErrUnsupportedCapability
	}

	pos, err := s.geolocator.CurrentPosition(ctx, req)
	if err != nil {
		if errors.Is(err, ErrUnsupportedCapability) {
			return Fix{}, err
		}
		s.logger.Error("geolocation error", "client_ip", req.ClientIP, "error", err)
		return Fix{}, fmt.Errorf("%w: %v", ErrGeolocation, err)
	}

	return Fix{Position: pos, Place: s.describe(ctx, pos)}, nil
}

// Place centers the view on fix and replaces the user marker.
func (s *Service) Place(fix Fix) viewport.Marker {
	s.view.SetView(fix.Position, LocateZoom)
	if s.markerID != 0 {
		s.view.RemoveMarker(s.markerID)
		s.markerID = 0
	}
	m := s.view.AddMarker(viewport.Marker{
		Position: fix.Position,
		Icon:     MarkerIcon,
		Popup:    MarkerPopup,
		Place:    fix.Place,
	})
	s.markerID = m.ID

	s.logger.Info("user located",
		"latitude", fix.Position.Latitude,
		"longitude", fix.Position.Longitude,
		"marker_id", m.ID,
	)
	return m
}

// IsAvailable reports whether a geolocation capability is configured.
func (s *Service) IsAvailable() bool {
	return s.geolocator.IsAvailable()
}

// RemoveMarker removes the user marker, or returns ErrNoMarker when there
// is none.
func (s *Service) RemoveMarker() error {
	if s.markerID == 0 {
		return ErrNoMarker
	}
	s.view.RemoveMarker(s.markerID)
	s.markerID = 0
	return nil
}

// Marker returns the current user marker.
func (s *Service) Marker() (viewport.Marker, bool) {
	if s.markerID == 0 {
		return viewport.Marker{}, false
	}
	for _, m := range s.view.Markers() {
		if m.ID == s.markerID {
			return m, true
		}
	}
	return viewport.Marker{}, false
}

// describe fetches timezone and place name in parallel. Failures only lose
// the detail.
func (s *Service) describe(ctx context.Context, pos types.Coords) types.LocationInfo {
	var (
		wg    sync.WaitGroup
		info  types.LocationInfo
		tz    string
		place *openstreetmap.LookupAPIResponse
	)

	if s.timezone != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := s.timezone.GetTimezone(pos.Latitude, pos.Longitude)
			if err != nil {
				s.logger.Warn("failed to determine timezone", "error", err)
				return
			}
			tz = name
		}()
	}

	if s.reverse != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := s.reverse.Lookup(ctx, pos.Latitude, pos.Longitude)
			if err != nil {
				s.logger.Warn("failed to reverse geocode", "error", err)
				return
			}
			place = resp
		}()
	}

	wg.Wait()

	info.Timezone = tz
	if place != nil {
		info.Name = place.Address.Locality()
		if info.Name == "" {
			info.Name = place.DisplayName
		}
		info.State = place.Address.State
		info.Country = place.Address.Country
		info.CountryCode = place.Address.CountryCode
	}
	return info
}
