package canvas

import (
	"image/color"
	"io"
	"sync"
)

// Point is a position on a surface in pixel units.
type Point struct {
	X, Y float64
}

// Path is a closed sequence of points. The edge from the last point back
// to the first is implied.
type Path []Point

// Surface is a fixed-size 2D drawing target.
type Surface interface {
	Width() int
	Height() int
	Clear()
	Fill(p Path, c color.Color)
	Stroke(p Path, c color.Color, width float64)
}

// PNGEncoder is a surface that can be exported as an image.
type PNGEncoder interface {
	EncodePNG(w io.Writer) error
}

// Registry maps element ids to surfaces.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

// Register adds or replaces the surface with the given id.
func (r *Registry) Register(id string, s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces[id] = s
}

// Get returns the surface with the given id.
func (r *Registry) Get(id string) (Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[id]
	return s, ok
}
