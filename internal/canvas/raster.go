package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// Raster is an in-memory RGBA surface.
type Raster struct {
	img *image.RGBA
}

// NewRaster allocates a transparent surface of the given size.
func NewRaster(width, height int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (r *Raster) Width() int  { return r.img.Bounds().Dx() }
func (r *Raster) Height() int { return r.img.Bounds().Dy() }

// Image exposes the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// Clear resets every pixel to transparent.
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

// Fill paints the interior of p.
func (r *Raster) Fill(p Path, c color.Color) {
	if len(p) == 0 {
		return
	}
	z := r.rasterizer()
	z.MoveTo(float32(p[0].X), float32(p[0].Y))
	for _, pt := range p[1:] {
		z.LineTo(float32(pt.X), float32(pt.Y))
	}
	z.ClosePath()
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// Stroke paints the outline of p, including the closing edge. Each edge is
// rasterized as a rectangle of the given width centred on the edge.
func (r *Raster) Stroke(p Path, c color.Color, width float64) {
	if len(p) < 2 || width <= 0 {
		return
	}
	z := r.rasterizer()
	half := width / 2
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		// left normal of the edge direction keeps every quad wound the same way
		nx, ny := -dy/l*half, dx/l*half
		z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
		z.LineTo(float32(b.X+nx), float32(b.Y+ny))
		z.LineTo(float32(b.X-nx), float32(b.Y-ny))
		z.LineTo(float32(a.X-nx), float32(a.Y-ny))
		z.ClosePath()
	}
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// EncodePNG writes the surface as a PNG image.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) rasterizer() *vector.Rasterizer {
	z := vector.NewRasterizer(r.Width(), r.Height())
	z.DrawOp = draw.Over
	return z
}
