package types

import "github.com/paulmach/orb"

// Coords is a geographic position in decimal degrees
type Coords struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// CoordsFromPoint converts an orb point, which is stored [lon, lat].
func CoordsFromPoint(p orb.Point) Coords {
	return NewCoords(p.Lat(), p.Lon())
}

// Point returns the coordinate as an orb point ([lon, lat]).
func (c Coords) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Valid reports whether the coordinate lies within the usual lat/lon ranges.
func (c Coords) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
