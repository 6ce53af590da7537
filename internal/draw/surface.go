package draw

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Align controls horizontal text placement relative to the x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a 2D drawing target in logical playfield units.
// Implementations keep a paint state (fill colour, stroke colour, text align)
// that Save pushes and Restore pops.
type Surface interface {
	// Size returns the logical width and height.
	Size() (w, h float64)

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	// DrawImageRegion draws the sprite pixels in the source rectangle
	// (sx, sy, sw, sh) scaled into the destination rectangle. Missing
	// sprites draw as a rectangle filled with their fallback colour.
	DrawImageRegion(img *Sprite, sx, sy, sw, sh int, dx, dy, dw, dh float64)

	// FillText draws s with the fill colour. y is the top of the text line.
	FillText(s string, x, y float64)

	SetFillColor(c color.RGBA)
	SetStrokeColor(c color.RGBA)
	SetTextAlign(a Align)

	Save()
	Restore()
}

// Paint is the state saved and restored by Surface implementations.
type Paint struct {
	Fill   color.RGBA
	Stroke color.RGBA
	Align  Align
}

// DefaultPaint is white fill and stroke, left aligned.
var DefaultPaint = Paint{
	Fill:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Stroke: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Align:  AlignLeft,
}

// PaintStack implements the paint-state half of Surface. Embed it.
type PaintStack struct {
	Paint
	saved []Paint
}

// SetFillColor sets the colour used by FillRect and FillText.
func (p *PaintStack) SetFillColor(c color.RGBA) { p.Fill = c }

// SetStrokeColor sets the colour used by StrokeRect.
func (p *PaintStack) SetStrokeColor(c color.RGBA) { p.Stroke = c }

// SetTextAlign sets the alignment used by FillText.
func (p *PaintStack) SetTextAlign(a Align) { p.Align = a }

// Save pushes the current paint state.
func (p *PaintStack) Save() {
	p.saved = append(p.saved, p.Paint)
}

// Restore pops the last saved paint state. Unbalanced calls are ignored.
func (p *PaintStack) Restore() {
	if len(p.saved) == 0 {
		return
	}
	p.Paint = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("parse colour %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ColorOr parses s like ParseHexColor and returns fallback on error.
func ColorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}
