package object

import (
	"image/color"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/pool"
)

// Projectile is a bullet fired by the player. Projectiles live in a fixed
// pool and are only updated and drawn while acquired.
type Projectile struct {
	Box
	Speed float64 // Units per frame, upwards
	Color color.RGBA
}

// NewProjectilePool preallocates the player's projectiles.
func NewProjectilePool(s config.ProjectileSettings) *pool.Pool[Projectile] {
	c := draw.ColorOr(s.Color, color.RGBA{R: 255, G: 221, A: 255})
	return pool.New(s.PoolSize, func(int) Projectile {
		return Projectile{
			Box:   Box{W: s.Width, H: s.Height},
			Speed: s.Speed,
			Color: c,
		}
	})
}

// Launch places the projectile so its top-centre sits at (x, y).
func (p *Projectile) Launch(x, y float64) {
	p.X = x - p.W/2
	p.Y = y - p.H
}

// Update moves the projectile up. It reports removal once fully above the playfield.
func (p *Projectile) Update(_ UpdateContext) (bool, error) {
	p.Y -= p.Speed
	return p.Y < -p.H, nil
}

// Draw renders the projectile as a filled rectangle.
func (p *Projectile) Draw(ctx DrawContext) error {
	fillBox(ctx.Surface, p.Box, p.Color)
	return nil
}

// UpdateProjectiles advances every active projectile and releases the ones
// that left the playfield.
func UpdateProjectiles(ctx UpdateContext) error {
	for h, p := range ctx.Projectiles.Active() {
		remove, err := p.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			ctx.Projectiles.Release(h)
		}
	}
	return nil
}

// DrawProjectiles draws every active projectile.
func DrawProjectiles(ctx DrawContext, projectiles *pool.Pool[Projectile]) error {
	for _, p := range projectiles.Active() {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
