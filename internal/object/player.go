package object

import (
	"image/color"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/pool"
)

// Player sprite frames.
const (
	FrameIdle = iota
	FrameLeft
	FrameRight
)

// Player is the ship at the bottom of the playfield.
type Player struct {
	Box
	Speed float64 // Units per frame

	Lives    int
	MaxLives int

	EdgeInset    float64 // Fraction of the ship allowed past either wall
	FireCooldown int     // Frames between shots while fire is held

	Sheet string
	Color color.RGBA
	Frame int

	cooldown int
	fireHeld bool
}

// NewPlayer creates a player centred at the bottom of pf.
func NewPlayer(s config.PlayerSettings, pf Playfield) *Player {
	p := &Player{
		Box:          Box{W: s.Width, H: s.Height},
		Speed:        s.Speed,
		MaxLives:     s.MaxLives,
		EdgeInset:    s.EdgeInset,
		FireCooldown: s.FireCooldown,
		Sheet:        s.Sheet,
		Color:        draw.ColorOr(s.Color, color.RGBA{R: 102, G: 204, B: 255, A: 255}),
	}
	p.Reset(pf, s.Lives)
	return p
}

// Reset recentres the player and restores lives.
func (p *Player) Reset(pf Playfield, lives int) {
	p.X = (pf.Width - p.W) / 2
	p.Y = pf.Height - p.H
	p.Lives = min(max(lives, 0), p.MaxLives)
	p.Frame = FrameIdle
	p.cooldown = 0
	p.fireHeld = false
}

// Bounds returns the allowed range of X within pf.
func (p *Player) Bounds(pf Playfield) (lo, hi float64) {
	return -p.W * p.EdgeInset, pf.Width - p.W*(1-p.EdgeInset)
}

// Update applies horizontal intent, clamps to the playfield and fires.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	var dx float64
	if ctx.Input.Left {
		dx -= p.Speed
	}
	if ctx.Input.Right {
		dx += p.Speed
	}
	p.X += dx

	switch {
	case dx < 0:
		p.Frame = FrameLeft
	case dx > 0:
		p.Frame = FrameRight
	default:
		p.Frame = FrameIdle
	}

	if ptr := ctx.Input.Pointer; ctx.Features.Pointer && ptr.Moved {
		p.X = ptr.X - p.W/2
	}

	lo, hi := p.Bounds(ctx.Playfield)
	p.X = physics.Clamp(p.X, lo, hi)

	if p.cooldown > 0 {
		p.cooldown--
	}
	fire := ctx.Input.Fire || (ctx.Features.Pointer && ctx.Input.Pointer.Click)
	if fire && (!p.fireHeld || p.cooldown == 0) && ctx.Projectiles != nil {
		p.Shoot(ctx.Projectiles)
		p.cooldown = p.FireCooldown
	}
	p.fireHeld = fire

	return false, nil
}

// Shoot launches a projectile from the top centre of the ship. It reports
// false when every projectile is already in flight.
func (p *Player) Shoot(projectiles *pool.Pool[Projectile]) bool {
	h, ok := projectiles.Acquire()
	if !ok {
		return false
	}
	projectiles.Get(h).Launch(p.X+p.W/2, p.Y)
	return true
}

// LoseLife removes one life, never going below zero.
func (p *Player) LoseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
}

// GainLife adds one life, never exceeding MaxLives.
func (p *Player) GainLife() {
	if p.Lives < p.MaxLives {
		p.Lives++
	}
}

// Draw renders the ship.
func (p *Player) Draw(ctx DrawContext) error {
	drawFrame(ctx, p.Sheet, p.Frame, 0, p.Box, p.Color)
	return nil
}
