// Package desktop runs the game in a native window with ebiten.
package desktop

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/invaders/internal/draw"
)

var background = color.RGBA{A: 255}

// Surface draws onto an ebiten image. Logical units are multiplied by
// Scale to get window pixels.
type Surface struct {
	draw.PaintStack

	Scale  float64
	width  float64
	height float64

	dst    *ebiten.Image
	images map[*draw.Sprite]*ebiten.Image
	face   font.Face
}

// NewSurface returns a surface for a logical area of w by h units.
func NewSurface(w, h, scale float64) *Surface {
	return &Surface{
		PaintStack: draw.PaintStack{Paint: draw.DefaultPaint},
		Scale:      scale,
		width:      w,
		height:     h,
		images:     make(map[*draw.Sprite]*ebiten.Image),
		face:       basicfont.Face7x13,
	}
}

// Bind sets the image the next draw calls go to.
func (s *Surface) Bind(dst *ebiten.Image) { s.dst = dst }

// ScreenSize returns the window size in pixels.
func (s *Surface) ScreenSize() (int, int) {
	return int(s.width * s.Scale), int(s.height * s.Scale)
}

func (s *Surface) Size() (float64, float64) { return s.width, s.height }

func (s *Surface) px(v float64) float32 { return float32(v * s.Scale) }

func (s *Surface) ClearRect(x, y, w, h float64) {
	vector.DrawFilledRect(s.dst, s.px(x), s.px(y), s.px(w), s.px(h), background, false)
}

func (s *Surface) FillRect(x, y, w, h float64) {
	vector.DrawFilledRect(s.dst, s.px(x), s.px(y), s.px(w), s.px(h), s.Fill, false)
}

func (s *Surface) StrokeRect(x, y, w, h float64) {
	vector.StrokeRect(s.dst, s.px(x), s.px(y), s.px(w), s.px(h), float32(s.Scale/2), s.Stroke, false)
}

func (s *Surface) DrawImageRegion(img *draw.Sprite, sx, sy, sw, sh int, dx, dy, dw, dh float64) {
	if img.Missing() || sw <= 0 || sh <= 0 {
		if img != nil {
			vector.DrawFilledRect(s.dst, s.px(dx), s.px(dy), s.px(dw), s.px(dh), img.Fallback(), false)
		}
		return
	}

	sheet, ok := s.images[img]
	if !ok {
		sheet = ebiten.NewImageFromImage(img.Image())
		s.images[img] = sheet
	}
	frame := sheet.SubImage(image.Rect(sx, sy, sx+sw, sy+sh)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dw*s.Scale/float64(sw), dh*s.Scale/float64(sh))
	op.GeoM.Translate(dx*s.Scale, dy*s.Scale)
	s.dst.DrawImage(frame, op)
}

func (s *Surface) FillText(str string, x, y float64) {
	width := font.MeasureString(s.face, str).Ceil()
	px := int(x * s.Scale)
	switch s.Align {
	case draw.AlignCenter:
		px -= width / 2
	case draw.AlignRight:
		px -= width
	}
	baseline := int(y*s.Scale) + s.face.Metrics().Ascent.Ceil()
	text.Draw(s.dst, str, s.face, px, baseline, s.Fill)
}
