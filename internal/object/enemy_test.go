package object

import (
	"testing"

	"github.com/tomz197/invaders/internal/draw/drawtest"
)

func fireAt(ctx UpdateContext, x, y float64) {
	h, ok := ctx.Projectiles.Acquire()
	if !ok {
		panic("projectile pool exhausted")
	}
	p := ctx.Projectiles.Get(h)
	p.X, p.Y = x, y
}

func TestEnemyHitAndDyingWindow(t *testing.T) {
	ctx := newTestContext()
	e := NewEnemy(archetype("beetlemorph"), 0, 0, 8, 0)
	e.Place(10, 10)
	fireAt(ctx, 12, 12)

	if remove, _ := e.Update(ctx); remove {
		t.Fatal("enemy removed on the frame it was hit")
	}
	if e.Alive() || !e.Dying() {
		t.Fatalf("HP = %d, want dying", e.HP)
	}
	if ctx.Projectiles.Len() != 0 {
		t.Error("hitting projectile was not released")
	}
	if ctx.Events.Points != 0 {
		t.Error("points awarded before the dying window ended")
	}

	if remove, _ := e.Update(ctx); remove {
		t.Fatal("dying window advanced without a sprite tick")
	}

	ctx.SpriteTick = true
	if remove, _ := e.Update(ctx); remove {
		t.Fatal("removed after one of two death frames")
	}
	if got := e.SpriteColumn(); got != 2 {
		t.Errorf("sprite column = %d, want second death frame 2", got)
	}
	if remove, _ := e.Update(ctx); !remove {
		t.Fatal("not removed after the dying window")
	}
	if ctx.Events.Points != 1 || ctx.Events.Kills != 1 {
		t.Errorf("events = %+v, want 1 point and 1 kill", *ctx.Events)
	}
	if !e.IsDestroyed() {
		t.Error("IsDestroyed = false after removal")
	}
	if ctx.Debris.Len() == 0 {
		t.Error("no debris after removal")
	}
}

func TestEnemyHitPoints(t *testing.T) {
	ctx := newTestContext()
	e := NewEnemy(archetype("rhinomorph"), 0, 0, 8, 0)
	e.Place(10, 10)

	fireAt(ctx, 12, 12)
	_, _ = e.Update(ctx)
	if e.HP != 3 {
		t.Fatalf("HP = %d after one hit, want 3", e.HP)
	}
	if got := e.SpriteColumn(); got != 1 {
		t.Errorf("damage column = %d, want 1", got)
	}

	for range 5 {
		fireAt(ctx, 12, 12)
	}
	_, _ = e.Update(ctx)
	if e.HP != 0 {
		t.Errorf("HP = %d, want 0", e.HP)
	}
	if got := ctx.Projectiles.Len(); got != 2 {
		t.Errorf("projectiles left = %d, want 2 (only hits are consumed)", got)
	}
}

func TestEnemyMissAtTouchingEdge(t *testing.T) {
	ctx := newTestContext()
	e := NewEnemy(archetype("beetlemorph"), 0, 0, 8, 0)
	e.Place(10, 10)
	fireAt(ctx, 18, 12)

	_, _ = e.Update(ctx)
	if !e.Alive() {
		t.Error("projectile touching the right edge counted as a hit")
	}
	if ctx.Projectiles.Len() != 1 {
		t.Error("missing projectile was released")
	}
}

func TestEnemyPlayerCollision(t *testing.T) {
	ctx := newTestContext()
	ctx.SpriteTick = true
	e := NewEnemy(archetype("rhinomorph"), 0, 0, 8, 0)
	e.Place(ctx.Player.X, ctx.Player.Y-4)

	_, _ = e.Update(ctx)
	if ctx.Player.Lives != 2 {
		t.Errorf("lives = %d, want 2", ctx.Player.Lives)
	}
	if !e.Forfeited() || e.Alive() {
		t.Error("enemy not forfeited on contact")
	}

	for range e.Kind.DeathFrames + 1 {
		_, _ = e.Update(ctx)
	}
	if !e.IsDestroyed() {
		t.Fatal("enemy not removed after dying window")
	}
	if ctx.Events.Points != 0 || ctx.Events.Kills != 0 {
		t.Errorf("events = %+v, want no points for a collision", *ctx.Events)
	}
	if ctx.Events.PlayerHits != 1 || ctx.Player.Lives != 2 {
		t.Errorf("player hits = %d lives = %d, want exactly one life lost", ctx.Events.PlayerHits, ctx.Player.Lives)
	}
}

func TestEnemyContactWithoutLives(t *testing.T) {
	ctx := newTestContext()
	ctx.Features.Lives = false
	e := NewEnemy(archetype("beetlemorph"), 0, 0, 8, 0)
	e.Place(ctx.Player.X, ctx.Player.Y-4)

	_, _ = e.Update(ctx)
	if !e.Alive() || ctx.Player.Lives != 3 {
		t.Errorf("contact resolved with lives disabled: HP %d lives %d", e.HP, ctx.Player.Lives)
	}
}

func TestEnemyBreach(t *testing.T) {
	ctx := newTestContext()
	ctx.Player.X = 100
	e := NewEnemy(archetype("beetlemorph"), 0, 0, 8, 0)

	e.Place(0, 71)
	_, _ = e.Update(ctx)
	if ctx.Events.Breach {
		t.Fatal("breach reported above the bottom")
	}

	e.Place(0, 72)
	_, _ = e.Update(ctx)
	if !ctx.Events.Breach {
		t.Error("breach not reported at the bottom")
	}
}

func TestEnemyDrawWithoutSprites(t *testing.T) {
	ctx := newTestContext()
	ctx.Features.Sprites = false
	e := NewEnemy(archetype("beetlemorph"), 0, 0, 8, 0)
	e.Place(4, 4)

	rec := drawtest.New(120, 80)
	dctx := DrawContext{Surface: rec, Features: ctx.Features}
	_ = e.Draw(dctx)

	fireAt(ctx, 5, 5)
	_, _ = e.Update(ctx)
	_ = e.Draw(dctx)

	if got := rec.Kinds(); len(got) != 2 || got[0] != "fill" || got[1] != "stroke" {
		t.Errorf("ops = %v, want [fill stroke]", got)
	}
	if rec.Ops[0].Color != e.Kind.Color {
		t.Errorf("fill colour = %v, want archetype colour", rec.Ops[0].Color)
	}
}
