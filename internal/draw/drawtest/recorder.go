// Package drawtest provides a draw.Surface that records calls for tests.
package drawtest

import (
	"image/color"

	"github.com/tomz197/invaders/internal/draw"
)

// Op is one recorded drawing call.
type Op struct {
	Kind       string // "clear", "fill", "stroke", "image" or "text"
	X, Y, W, H float64
	Text       string
	Color      color.RGBA // Fill colour for fill/text, stroke colour for stroke
	Align      draw.Align
	Sheet      string
	SX, SY     int
}

// Recorder is a Surface that keeps every call in Ops.
type Recorder struct {
	draw.PaintStack
	Width, Height float64
	Ops           []Op
}

var _ draw.Surface = (*Recorder)(nil)

// New returns an empty recorder of the given logical size.
func New(w, h float64) *Recorder {
	return &Recorder{PaintStack: draw.PaintStack{Paint: draw.DefaultPaint}, Width: w, Height: h}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "clear", X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "fill", X: x, Y: y, W: w, H: h, Color: r.Fill})
}

func (r *Recorder) StrokeRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "stroke", X: x, Y: y, W: w, H: h, Color: r.Stroke})
}

func (r *Recorder) DrawImageRegion(img *draw.Sprite, sx, sy, _, _ int, dx, dy, dw, dh float64) {
	r.Ops = append(r.Ops, Op{Kind: "image", X: dx, Y: dy, W: dw, H: dh, Sheet: img.Name(), SX: sx, SY: sy})
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Text: s, Color: r.Fill, Align: r.Align})
}

// Kinds returns the kind of every recorded op in order.
func (r *Recorder) Kinds() []string {
	kinds := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Texts returns every string passed to FillText.
func (r *Recorder) Texts() []string {
	var texts []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// Reset drops recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
