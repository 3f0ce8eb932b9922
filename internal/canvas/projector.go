// Package canvas draws a single country onto a fixed-size surface using an
// equirectangular projection.
package canvas

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/paulmach/orb"
)

var (
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	ErrSurfaceNotFound     = errors.New("canvas surface not found")
)

var (
	FillColor   = color.RGBA{R: 0x42, G: 0x85, B: 0xF4, A: 0xff} // #4285F4
	StrokeColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff} // #333
)

const StrokeWidth = 1.0

// Project maps a lon/lat pair onto a width x height surface.
func Project(lon, lat float64, width, height int) Point {
	return Point{
		X: (lon + 180) * (float64(width) / 360),
		Y: (90 - lat) * (float64(height) / 180),
	}
}

// Projector paints Polygon and MultiPolygon geometries.
type Projector struct {
	logger *slog.Logger
}

func NewProjector(logger *slog.Logger) *Projector {
	return &Projector{logger: logger.With("component", "canvas-projector")}
}

// Draw clears s and paints every ring of g. Polygons of a MultiPolygon are
// painted in order onto the same surface. Holes are painted like outer
// rings. Other geometry types leave the surface cleared and return
// ErrUnsupportedGeometry.
func (p *Projector) Draw(s Surface, g orb.Geometry) error {
	s.Clear()

	switch geom := g.(type) {
	case orb.Polygon:
		p.drawPolygon(s, geom)
	case orb.MultiPolygon:
		for _, poly := range geom {
			p.drawPolygon(s, poly)
		}
	default:
		p.logger.Warn("unsupported geometry type", "type", geometryType(g))
		return ErrUnsupportedGeometry
	}
	return nil
}

func (p *Projector) drawPolygon(s Surface, poly orb.Polygon) {
	w, h := s.Width(), s.Height()
	for _, ring := range poly {
		if len(ring) == 0 {
			continue
		}
		path := make(Path, len(ring))
		for i, pt := range ring {
			path[i] = Project(pt.Lon(), pt.Lat(), w, h)
		}
		s.Fill(path, FillColor)
		s.Stroke(path, StrokeColor, StrokeWidth)
	}
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
