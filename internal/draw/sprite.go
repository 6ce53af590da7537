package draw

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"

	"github.com/charmbracelet/log"
)

// Sprite is a sprite sheet laid out as a grid of equally sized frames.
// A sprite whose sheet could not be loaded is a placeholder that draws
// as a flat rectangle in its fallback colour.
type Sprite struct {
	name     string
	img      image.Image
	fallback color.RGBA
	frameW   int
	frameH   int
}

// NewSprite wraps an already decoded sheet.
func NewSprite(name string, img image.Image, frameW, frameH int, fallback color.RGBA) *Sprite {
	return &Sprite{name: name, img: img, fallback: fallback, frameW: frameW, frameH: frameH}
}

// NewPlaceholder returns a sprite with no image data.
func NewPlaceholder(name string, frameW, frameH int, fallback color.RGBA) *Sprite {
	return &Sprite{name: name, fallback: fallback, frameW: frameW, frameH: frameH}
}

// Name returns the sheet name the sprite was loaded from.
func (s *Sprite) Name() string { return s.name }

// Image returns the decoded sheet, or nil for a placeholder.
func (s *Sprite) Image() image.Image { return s.img }

// Missing reports whether the sprite is a placeholder.
func (s *Sprite) Missing() bool { return s == nil || s.img == nil }

// Fallback returns the placeholder colour.
func (s *Sprite) Fallback() color.RGBA { return s.fallback }

// Frame returns the source rectangle of the frame at column col, row row.
func (s *Sprite) Frame(col, row int) (sx, sy, sw, sh int) {
	return col * s.frameW, row * s.frameH, s.frameW, s.frameH
}

// At returns the colour of the sheet pixel at (x, y) and whether it is
// opaque enough to draw. Out-of-bounds pixels are transparent.
func (s *Sprite) At(x, y int) (color.RGBA, bool) {
	if s.Missing() {
		return color.RGBA{}, false
	}
	if !(image.Point{X: x, Y: y}).In(s.img.Bounds()) {
		return color.RGBA{}, false
	}
	c := color.NRGBAModel.Convert(s.img.At(x, y)).(color.NRGBA)
	if c.A < 128 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, true
}

// Loader decodes PNG sprite sheets from a file system.
type Loader struct {
	FS     fs.FS
	Logger *log.Logger
}

// Load decodes the named sheet. When the sheet cannot be read or decoded
// the failure is logged and a placeholder is returned.
func (l Loader) Load(name string, frameW, frameH int, fallback color.RGBA) *Sprite {
	img, err := l.decode(name)
	if err != nil {
		if l.Logger != nil {
			l.Logger.Warn("sprite sheet unavailable, using flat colour", "sheet", name, "err", err)
		}
		return NewPlaceholder(name, frameW, frameH, fallback)
	}
	return NewSprite(name, img, frameW, frameH, fallback)
}

func (l Loader) decode(name string) (image.Image, error) {
	if l.FS == nil {
		return nil, fmt.Errorf("no asset file system")
	}
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
