// Package geoip resolves client addresses to coordinates with a MaxMind
// GeoLite2/GeoIP2 City database.
package geoip

import (
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/oschwald/geoip2-golang"
)

var (
	ErrInvalidIP = errors.New("invalid ip address")
	ErrNotFound  = errors.New("no location for ip address")
)

// CityReader is the part of geoip2.Reader the client uses.
type CityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

type Client struct {
	reader CityReader
	logger *slog.Logger
}

// Open opens the database file at path.
func Open(path string, logger *slog.Logger) (*Client, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}
	return NewClient(reader, logger), nil
}

func NewClient(reader CityReader, logger *slog.Logger) *Client {
	return &Client{
		reader: reader,
		logger: logger.With("component", "geoip-client"),
	}
}

// Lookup returns the latitude and longitude recorded for ip.
func (c *Client) Lookup(ip string) (float64, float64, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}

	record, err := c.reader.City(parsed)
	if err != nil {
		c.logger.Error("geoip lookup failed", "ip", ip, "error", err)
		return 0, 0, fmt.Errorf("geoip lookup: %w", err)
	}

	loc := record.Location
	// private and unknown ranges come back zero valued
	if loc.Latitude == 0 && loc.Longitude == 0 && loc.AccuracyRadius == 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrNotFound, ip)
	}

	c.logger.Debug("geoip lookup",
		"ip", ip,
		"latitude", loc.Latitude,
		"longitude", loc.Longitude,
		"accuracy_km", loc.AccuracyRadius,
	)
	return loc.Latitude, loc.Longitude, nil
}

func (c *Client) Close() error {
	return c.reader.Close()
}
