// Package viewport models the map control surface: view, bounds, tile
// layer, the single open popup, markers and theme.
//
// A Viewport is not safe for concurrent use; the session serializes access.
package viewport

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	"history-map/internal/types"
)

const tileSize = 256

var ErrNoThemeControl = errors.New("no theme control")

// Theme is the page colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// TileLayer is the raster base layer.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	NoWrap      bool   `json:"noWrap"`
}

// Popup is an informational bubble anchored at a coordinate. Title and
// Text carry the plain parts of a titled popup; Content is the markup shown.
type Popup struct {
	Anchor  types.Coords `json:"anchor"`
	Title   string       `json:"title,omitempty"`
	Text    string       `json:"text,omitempty"`
	Content string       `json:"content"`
	// MarkerID is set when the popup belongs to a marker.
	MarkerID int `json:"markerId,omitempty"`
}

// Marker is a point overlay with its own popup.
type Marker struct {
	ID       int                `json:"id"`
	Position types.Coords       `json:"position"`
	Icon     string             `json:"icon"`
	Popup    string             `json:"popup"`
	Place    types.LocationInfo `json:"place"`
}

// Options configures a new viewport.
type Options struct {
	Center             types.Coords
	Zoom               int
	MinZoom            int
	MaxZoom            int
	MaxBounds          orb.Bound
	MaxBoundsViscosity float64
	TileLayer          TileLayer
	ThemeToggle        bool
	Width, Height      int // pixel size of the map element
}

// DefaultOptions returns the initial world view.
func DefaultOptions() Options {
	return Options{
		Center:             types.NewCoords(20, 0),
		Zoom:               2,
		MinZoom:            2,
		MaxZoom:            18,
		MaxBounds:          orb.Bound{Min: orb.Point{-180, -85}, Max: orb.Point{180, 85}},
		MaxBoundsViscosity: 1.0,
		TileLayer: TileLayer{
			URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "&copy; OpenStreetMap contributors",
			NoWrap:      true,
		},
		ThemeToggle: true,
		Width:       1024,
		Height:      768,
	}
}

// Viewport is the current map state.
type Viewport struct {
	opts    Options
	center  types.Coords
	zoom    int
	bounds  orb.Bound
	popup   *Popup
	markers []*Marker
	nextID  int
	theme   Theme
}

func New(opts Options) *Viewport {
	v := &Viewport{
		opts:   opts,
		bounds: opts.MaxBounds,
		theme:  ThemeLight,
		nextID: 1,
	}
	v.SetView(opts.Center, opts.Zoom)
	return v
}

// Center returns the view center.
func (v *Viewport) Center() types.Coords { return v.center }

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() int { return v.zoom }

// MaxBounds returns the bounds the view is held within.
func (v *Viewport) MaxBounds() orb.Bound { return v.bounds }

// SetView moves the view. Zoom is clamped to the allowed range and the
// center is held inside the max bounds.
func (v *Viewport) SetView(center types.Coords, zoom int) {
	v.zoom = min(max(zoom, v.opts.MinZoom), v.opts.MaxZoom)
	v.center = v.clampCenter(center)
}

// SetMaxBounds replaces the max bounds and pulls the center inside them.
func (v *Viewport) SetMaxBounds(b orb.Bound) {
	v.bounds = b
	v.center = v.clampCenter(v.center)
}

// FitBounds centers the view on b at the largest zoom that shows all of it.
func (v *Viewport) FitBounds(b orb.Bound) {
	v.SetView(types.CoordsFromPoint(b.Center()), BoundsZoom(b, v.opts.Width, v.opts.Height, v.opts.MaxZoom))
}

// BoundsZoom returns the largest zoom at which b fits in a width x height
// pixel view under web mercator, capped at maxZoom.
func BoundsZoom(b orb.Bound, width, height, maxZoom int) int {
	lonFrac := (b.Max.Lon() - b.Min.Lon()) / 360
	latFrac := (mercatorY(b.Max.Lat()) - mercatorY(b.Min.Lat())) / (2 * math.Pi)

	z := float64(maxZoom)
	if lonFrac > 0 {
		z = math.Min(z, math.Log2(float64(width)/(tileSize*lonFrac)))
	}
	if latFrac > 0 {
		z = math.Min(z, math.Log2(float64(height)/(tileSize*latFrac)))
	}
	return int(math.Floor(z))
}

func mercatorY(lat float64) float64 {
	lat = math.Max(math.Min(lat, 85.0511287798), -85.0511287798)
	return math.Log(math.Tan(math.Pi/4 + lat*math.Pi/360))
}

func (v *Viewport) clampCenter(c types.Coords) types.Coords {
	if v.bounds.IsZero() || v.opts.MaxBoundsViscosity == 0 {
		return c
	}
	c.Latitude = math.Min(math.Max(c.Latitude, v.bounds.Min.Lat()), v.bounds.Max.Lat())
	c.Longitude = math.Min(math.Max(c.Longitude, v.bounds.Min.Lon()), v.bounds.Max.Lon())
	return c
}

// NewTitledPopup builds a popup with a bold title line above the text.
func NewTitledPopup(anchor types.Coords, title, text string) Popup {
	return Popup{
		Anchor:  anchor,
		Title:   title,
		Text:    text,
		Content: "<b>" + title + "</b><br>" + text,
	}
}

// OpenPopup shows p, replacing any open popup.
func (v *Viewport) OpenPopup(p Popup) {
	v.popup = &p
}

// Popup returns the open popup, if any.
func (v *Viewport) Popup() (Popup, bool) {
	if v.popup == nil {
		return Popup{}, false
	}
	return *v.popup, true
}

// ClosePopup closes the open popup.
func (v *Viewport) ClosePopup() {
	v.popup = nil
}

// AddMarker places m on the map, assigns its id and opens its popup.
func (v *Viewport) AddMarker(m Marker) Marker {
	m.ID = v.nextID
	v.nextID++
	v.markers = append(v.markers, &m)
	if m.Popup != "" {
		v.OpenPopup(Popup{Anchor: m.Position, Content: m.Popup, MarkerID: m.ID})
	}
	return m
}

// RemoveMarker removes the marker with the given id and closes its popup.
func (v *Viewport) RemoveMarker(id int) bool {
	for i, m := range v.markers {
		if m.ID != id {
			continue
		}
		v.markers = append(v.markers[:i], v.markers[i+1:]...)
		if v.popup != nil && v.popup.MarkerID == id {
			v.popup = nil
		}
		return true
	}
	return false
}

// Markers returns every marker on the map.
func (v *Viewport) Markers() []Marker {
	out := make([]Marker, 0, len(v.markers))
	for _, m := range v.markers {
		out = append(out, *m)
	}
	return out
}

// Theme returns the active theme.
func (v *Viewport) Theme() Theme { return v.theme }

// ToggleTheme switches between light and dark. Without a theme control the
// theme stays as it is and ErrNoThemeControl is returned.
func (v *Viewport) ToggleTheme() (Theme, error) {
	if !v.opts.ThemeToggle {
		return v.theme, ErrNoThemeControl
	}
	if v.theme == ThemeDark {
		v.theme = ThemeLight
	} else {
		v.theme = ThemeDark
	}
	return v.theme, nil
}

// State is a JSON snapshot of the viewport.
type State struct {
	Center             types.Coords  `json:"center"`
	Zoom               int           `json:"zoom"`
	MinZoom            int           `json:"minZoom"`
	MaxZoom            int           `json:"maxZoom"`
	MaxBounds          [2][2]float64 `json:"maxBounds"` // [[south, west], [north, east]]
	MaxBoundsViscosity float64       `json:"maxBoundsViscosity"`
	WorldCopyJump      bool          `json:"worldCopyJump"`
	TileLayer          TileLayer     `json:"tileLayer"`
	Popup              *Popup        `json:"popup,omitempty"`
	Markers            []Marker      `json:"markers"`
	Theme              Theme         `json:"theme"`
}

func (v *Viewport) State() State {
	s := State{
		Center:  v.center,
		Zoom:    v.zoom,
		MinZoom: v.opts.MinZoom,
		MaxZoom: v.opts.MaxZoom,
		MaxBounds: [2][2]float64{
			{v.bounds.Min.Lat(), v.bounds.Min.Lon()},
			{v.bounds.Max.Lat(), v.bounds.Max.Lon()},
		},
		MaxBoundsViscosity: v.opts.MaxBoundsViscosity,
		TileLayer:          v.opts.TileLayer,
		Markers:            v.Markers(),
		Theme:              v.theme,
	}
	if p, ok := v.Popup(); ok {
		s.Popup = &p
	}
	return s
}
