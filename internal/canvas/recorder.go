package canvas

import "image/color"

// Op is one recorded drawing call.
type Op struct {
	Kind  string // clear, fill, stroke
	Path  Path
	Color color.Color
	Width float64
}

// Recorder is a Surface that records calls instead of drawing them.
type Recorder struct {
	W, H int
	Ops  []Op
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{W: width, H: height}
}

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: "clear"})
}

func (r *Recorder) Fill(p Path, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "fill", Path: append(Path(nil), p...), Color: c})
}

func (r *Recorder) Stroke(p Path, c color.Color, width float64) {
	r.Ops = append(r.Ops, Op{Kind: "stroke", Path: append(Path(nil), p...), Color: c, Width: width})
}

// Kinds returns the kind of every recorded op, in order.
func (r *Recorder) Kinds() []string {
	out := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.Kind
	}
	return out
}
