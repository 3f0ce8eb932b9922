// Package boundary holds the country boundary layer: one feature per
// country with its geometry, current style and event handlers.
//
// A Layer is not safe for concurrent use; the session serializes access.
package boundary

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// NameProperty is the feature property carrying the country name.
const NameProperty = "ADMIN"

var (
	ErrMalformed      = errors.New("malformed boundary data")
	ErrUnknownFeature = errors.New("unknown feature")
)

// Feature is one named country.
type Feature struct {
	Name     string
	Geometry orb.Geometry
	Style    Style
	State    VisualState
}

// EventType names a pointer event on a feature.
type EventType string

const (
	PointerEnter EventType = "mouseover"
	PointerLeave EventType = "mouseout"
	Click        EventType = "click"
)

// Event is delivered to feature handlers.
type Event struct {
	Type    EventType
	Feature *Feature
	LatLng  orb.Point
	Engine  Engine
}

// Handler reacts to a feature event.
type Handler func(Event)

// Layer is the set of country features in paint order. The last feature
// is drawn on top.
type Layer struct {
	features     []*Feature
	byName       map[string]*Feature
	defaultStyle Style
	handlers     map[string]map[EventType][]Handler
	logger       *slog.Logger
}

// Decode parses a GeoJSON feature collection.
func Decode(b []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fc, nil
}

// NewLayer builds a layer from a feature collection, applying defaultStyle
// to every feature. Features without a name are skipped, as are later
// features repeating an earlier name.
func NewLayer(fc *geojson.FeatureCollection, defaultStyle Style, logger *slog.Logger) (*Layer, error) {
	if fc == nil {
		return nil, fmt.Errorf("%w: no feature collection", ErrMalformed)
	}

	l := &Layer{
		byName:       make(map[string]*Feature, len(fc.Features)),
		defaultStyle: defaultStyle,
		handlers:     make(map[string]map[EventType][]Handler),
		logger:       logger.With("component", "boundary-layer"),
	}

	for i, f := range fc.Features {
		name := strings.TrimSpace(f.Properties.MustString(NameProperty, ""))
		if name == "" {
			l.logger.Warn("skipping feature without name", "index", i)
			continue
		}
		if _, dup := l.byName[name]; dup {
			l.logger.Warn("skipping duplicate feature", "name", name, "index", i)
			continue
		}
		feature := &Feature{
			Name:     name,
			Geometry: f.Geometry,
			Style:    defaultStyle,
			State:    StateDefault,
		}
		l.features = append(l.features, feature)
		l.byName[name] = feature
	}

	l.logger.Debug("boundary layer built", "features", len(l.features))
	return l, nil
}

// DefaultStyle returns the style shared by every feature at rest.
func (l *Layer) DefaultStyle() Style {
	return l.defaultStyle
}

// Len returns the number of features.
func (l *Layer) Len() int {
	return len(l.features)
}

// Feature returns the feature with the given name.
func (l *Layer) Feature(name string) (*Feature, bool) {
	f, ok := l.byName[name]
	return f, ok
}

// Features returns the features in paint order.
func (l *Layer) Features() []*Feature {
	out := make([]*Feature, len(l.features))
	copy(out, l.features)
	return out
}

// SetStyle overrides the style of one feature.
func (l *Layer) SetStyle(name string, s Style) error {
	f, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	f.Style = s
	if s == l.defaultStyle {
		f.State = StateDefault
	} else {
		f.State = StateHighlighted
	}
	return nil
}

// ResetStyle restores the layer default style on one feature.
func (l *Layer) ResetStyle(name string) error {
	return l.SetStyle(name, l.defaultStyle)
}

// BringToFront moves the feature to the top of the paint order.
func (l *Layer) BringToFront(name string) error {
	f, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	for i, cur := range l.features {
		if cur == f {
			l.features = append(l.features[:i], l.features[i+1:]...)
			l.features = append(l.features, f)
			break
		}
	}
	return nil
}

// Bounds returns the smallest bound containing every feature.
func (l *Layer) Bounds() orb.Bound {
	var (
		b     orb.Bound
		first = true
	)
	for _, f := range l.features {
		if f.Geometry == nil {
			continue
		}
		if first {
			b = f.Geometry.Bound()
			first = false
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// PadBound grows b on every side by ratio times its extent on that axis.
func PadBound(b orb.Bound, ratio float64) orb.Bound {
	dLon := (b.Max.Lon() - b.Min.Lon()) * ratio
	dLat := (b.Max.Lat() - b.Min.Lat()) * ratio
	return orb.Bound{
		Min: orb.Point{b.Min.Lon() - dLon, b.Min.Lat() - dLat},
		Max: orb.Point{b.Max.Lon() + dLon, b.Max.Lat() + dLat},
	}
}

// On subscribes h to events of type t on the named feature.
func (l *Layer) On(name string, t EventType, h Handler) error {
	if _, ok := l.byName[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	byType, ok := l.handlers[name]
	if !ok {
		byType = make(map[EventType][]Handler)
		l.handlers[name] = byType
	}
	byType[t] = append(byType[t], h)
	return nil
}

// Dispatch delivers ev to the handlers of the named feature, in
// subscription order.
func (l *Layer) Dispatch(name string, ev Event) error {
	f, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, name)
	}
	ev.Feature = f
	for _, h := range l.handlers[name][ev.Type] {
		h(ev)
	}
	return nil
}

// HitTest returns the topmost feature whose geometry contains p.
func (l *Layer) HitTest(p orb.Point) (*Feature, bool) {
	for i := len(l.features) - 1; i >= 0; i-- {
		f := l.features[i]
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if planar.PolygonContains(g, p) {
				return f, true
			}
		case orb.MultiPolygon:
			if planar.MultiPolygonContains(g, p) {
				return f, true
			}
		}
	}
	return nil, false
}

// FeatureCollection renders the layer as GeoJSON in paint order, with the
// name, tooltip, style and visual state of each feature as properties.
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range l.features {
		gf := geojson.NewFeature(f.Geometry)
		gf.Properties[NameProperty] = f.Name
		gf.Properties["tooltip"] = f.Name
		gf.Properties["style"] = f.Style
		gf.Properties["state"] = f.State
		fc.Append(gf)
	}
	return fc
}
