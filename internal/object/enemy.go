package object

import (
	"github.com/tomz197/invaders/internal/physics"
)

// Enemy is one member of a formation. Its position is the formation origin
// plus a fixed grid offset.
type Enemy struct {
	Box
	OffsetX, OffsetY float64

	Kind    Archetype
	HP      int
	MaxHP   int
	Variant int // Sheet row

	dying      int // Sprite steps left in the dying window
	deathFrame int
	forfeit    bool // Destroyed by colliding with the player; no points
	removed    bool
}

// NewEnemy creates an enemy of kind at the given grid offset.
func NewEnemy(kind Archetype, offsetX, offsetY, size float64, variant int) *Enemy {
	return &Enemy{
		Box:     Box{W: size, H: size},
		OffsetX: offsetX,
		OffsetY: offsetY,
		Kind:    kind,
		HP:      kind.HitPoints,
		MaxHP:   kind.HitPoints,
		Variant: variant,
	}
}

// Place moves the enemy relative to the formation origin.
func (e *Enemy) Place(fx, fy float64) {
	e.X = fx + e.OffsetX
	e.Y = fy + e.OffsetY
}

// Alive reports whether the enemy still has hit points.
func (e *Enemy) Alive() bool { return e.HP > 0 }

// Dying reports whether the enemy is playing its death animation.
func (e *Enemy) Dying() bool { return e.HP <= 0 && !e.removed }

// Forfeited reports whether the enemy was destroyed by the player's ship.
func (e *Enemy) Forfeited() bool { return e.forfeit }

// MarkDestroyed removes the enemy on its next update without awarding points.
func (e *Enemy) MarkDestroyed() {
	e.HP = 0
	e.forfeit = true
	e.dying = 0
}

// IsDestroyed reports whether the enemy has left the formation.
func (e *Enemy) IsDestroyed() bool { return e.removed }

// Update resolves projectile hits and player contact, then runs the dying window.
func (e *Enemy) Update(ctx UpdateContext) (bool, error) {
	if e.removed {
		return true, nil
	}

	if e.HP > 0 {
		e.checkProjectiles(ctx)

		if e.HP > 0 && ctx.Features.Lives && ctx.Player != nil &&
			physics.Overlaps(e.Rect(), ctx.Player.Rect()) {
			e.HP = 0
			e.forfeit = true
			ctx.Player.LoseLife()
			if ctx.Events != nil {
				ctx.Events.PlayerHits++
			}
		}

		if e.HP > 0 {
			if e.Y+e.H >= ctx.Playfield.Height && ctx.Events != nil {
				ctx.Events.Breach = true
			}
			return false, nil
		}

		e.dying = e.Kind.DeathFrames
		e.deathFrame = 0
	} else if ctx.SpriteTick {
		e.dying--
		e.deathFrame++
	}

	if e.dying > 0 {
		return false, nil
	}

	e.removed = true
	if ctx.Events != nil && !e.forfeit {
		ctx.Events.Points += e.Kind.Points
		ctx.Events.Kills++
	}
	if ctx.Features.Debris && ctx.Debris != nil && ctx.Rand != nil {
		ctx.Debris.Burst(e.X+e.W/2, e.Y+e.H/2, e.Kind.Color, ctx.Rand)
	}
	return true, nil
}

// checkProjectiles takes one hit point per overlapping projectile and
// releases each projectile that hit.
func (e *Enemy) checkProjectiles(ctx UpdateContext) {
	if ctx.Projectiles == nil {
		return
	}
	r := e.Rect()
	for h, p := range ctx.Projectiles.Active() {
		if e.HP <= 0 {
			return
		}
		if physics.Overlaps(r, p.Rect()) {
			e.HP--
			ctx.Projectiles.Release(h)
		}
	}
}

// SpriteColumn returns the sheet column for the enemy's current state.
func (e *Enemy) SpriteColumn() int {
	k := e.Kind
	if e.HP > 0 {
		return min(e.MaxHP-e.HP, max(k.DamageFrames-1, 0))
	}
	return k.DamageFrames + min(e.deathFrame, max(k.DeathFrames-1, 0))
}

// Draw renders the enemy. Without sprites a living enemy is a filled block
// and a dying one an outline.
func (e *Enemy) Draw(ctx DrawContext) error {
	if e.removed {
		return nil
	}
	if !ctx.Features.Sprites && e.HP <= 0 {
		strokeBox(ctx.Surface, e.Box, e.Kind.Color)
		return nil
	}
	drawFrame(ctx, e.Kind.Sheet, e.SpriteColumn(), e.Variant, e.Box, e.Kind.Color)
	return nil
}
