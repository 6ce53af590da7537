package object

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/pool"
)

// Particle is a short-lived piece of debris.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity, units per frame
	Life    int     // Frames remaining
	MaxLife int     // Initial life (for fade calculation)
	Color   color.RGBA
}

// DebrisField owns a fixed pool of particles used for explosions.
type DebrisField struct {
	particles *pool.Pool[Particle]
	burst     int
	speed     float64
	life      int
	drag      float64 // Velocity kept per frame (1.0 = no drag)
}

// NewDebrisField preallocates the particle pool.
func NewDebrisField(s config.DebrisSettings) *DebrisField {
	return &DebrisField{
		particles: pool.New(s.PoolSize, func(int) Particle { return Particle{} }),
		burst:     s.Burst,
		speed:     s.Speed,
		life:      max(s.Life, 1),
		drag:      s.Drag,
	}
}

// Burst scatters particles from (x, y). When the pool runs out the rest of
// the burst is dropped.
func (d *DebrisField) Burst(x, y float64, c color.RGBA, rng *rand.Rand) {
	for range d.burst {
		h, ok := d.particles.Acquire()
		if !ok {
			return
		}

		// Random direction, speed 50% to 150%, lifetime 50% to 100%
		angle := rng.Float64() * 2 * math.Pi
		spd := d.speed * (0.5 + rng.Float64())
		life := max(int(float64(d.life)*(0.5+rng.Float64()*0.5)), 1)

		*d.particles.Get(h) = Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * spd,
			VY:      math.Sin(angle) * spd,
			Life:    life,
			MaxLife: life,
			Color:   c,
		}
	}
}

// Len returns the number of live particles.
func (d *DebrisField) Len() int { return d.particles.Len() }

// Reset drops every particle.
func (d *DebrisField) Reset() { d.particles.Reset() }

// Update ages and moves every particle. The field itself is never removed.
func (d *DebrisField) Update(_ UpdateContext) (bool, error) {
	for h, p := range d.particles.Active() {
		p.Life--
		if p.Life <= 0 {
			d.particles.Release(h)
			continue
		}
		p.VX *= d.drag
		p.VY *= d.drag
		p.X += p.VX
		p.Y += p.VY
	}
	return false, nil
}

// Draw renders each particle as a one-unit square.
func (d *DebrisField) Draw(ctx DrawContext) error {
	s := ctx.Surface
	s.Save()
	defer s.Restore()
	for _, p := range d.particles.Active() {
		// Skip faded particles (< 25% lifetime)
		if p.MaxLife > 0 && float64(p.Life)/float64(p.MaxLife) < 0.25 {
			continue
		}
		s.SetFillColor(p.Color)
		s.FillRect(p.X, p.Y, 1, 1)
	}
	return nil
}
