package object

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/pool"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Features is an alias for the configured feature toggles.
type Features = config.Features

// Playfield is the logical size of the play area.
type Playfield struct {
	Width  float64
	Height float64
}

// Box is an axis-aligned position and size. X, Y is the top-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// Rect returns the box as a collision rectangle.
func (b Box) Rect() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Events accumulates what happened during one frame.
type Events struct {
	Points     int  // Points earned by enemies removed this frame
	Kills      int  // Enemies destroyed by projectiles
	PlayerHits int  // Lives lost to enemy contact
	Breach     bool // An enemy reached the bottom of the playfield
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Frame      int
	Delta      time.Duration
	Input      Input
	Playfield  Playfield
	SpriteTick bool // Sprite animations advance one step this frame

	Projectiles *pool.Pool[Projectile]
	Player      *Player
	Debris      *DebrisField

	Features Features
	Events   *Events
	Rand     *rand.Rand
}

// SpriteSet maps sheet names to loaded sprites.
type SpriteSet map[string]*draw.Sprite

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface  draw.Surface
	Sprites  SpriteSet
	Features Features
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Surface.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

var (
	_ Object       = (*Player)(nil)
	_ Object       = (*Enemy)(nil)
	_ Object       = (*Formation)(nil)
	_ Object       = (*DebrisField)(nil)
	_ Destructible = (*Enemy)(nil)
)

// drawFrame draws one sprite frame into b, or a flat rectangle when sprites
// are disabled or the sheet is unknown.
func drawFrame(ctx DrawContext, sheet string, col, row int, b Box, fallback color.RGBA) {
	s := ctx.Sprites[sheet]
	if !ctx.Features.Sprites || s == nil {
		fillBox(ctx.Surface, b, fallback)
		return
	}
	sx, sy, sw, sh := s.Frame(col, row)
	ctx.Surface.DrawImageRegion(s, sx, sy, sw, sh, b.X, b.Y, b.W, b.H)
}

func fillBox(s draw.Surface, b Box, c color.RGBA) {
	s.Save()
	s.SetFillColor(c)
	s.FillRect(b.X, b.Y, b.W, b.H)
	s.Restore()
}

func strokeBox(s draw.Surface, b Box, c color.RGBA) {
	s.Save()
	s.SetStrokeColor(c)
	s.StrokeRect(b.X, b.Y, b.W, b.H)
	s.Restore()
}
