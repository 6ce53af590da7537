// Package assets holds the built-in sprite sheets.
package assets

import (
	"embed"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/object"
)

//go:embed *.png
var FS embed.FS

// Dir returns the sheets in dir, or the embedded sheets when dir is empty.
func Dir(dir string) fs.FS {
	if dir == "" {
		return FS
	}
	return os.DirFS(dir)
}

// LoadSprites loads the player sheet and every archetype sheet named in s.
// Sheets that fail to load become flat-colour placeholders.
func LoadSprites(fsys fs.FS, s config.Settings, logger *log.Logger) object.SpriteSet {
	l := draw.Loader{FS: fsys, Logger: logger}
	set := object.SpriteSet{}

	p := s.Player
	set[p.Sheet] = l.Load(p.Sheet, p.FrameWidth, p.FrameHeight, draw.ColorOr(p.Color, draw.DefaultPaint.Fill))

	for _, a := range s.Enemies {
		if a.Sheet == "" {
			continue
		}
		if _, ok := set[a.Sheet]; ok {
			continue
		}
		set[a.Sheet] = l.Load(a.Sheet, a.FrameWidth, a.FrameHeight, draw.ColorOr(a.Color, draw.DefaultPaint.Fill))
	}
	return set
}
