package object

import (
	"math"
	"testing"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/pool"
)

func TestPlayerStaysInBounds(t *testing.T) {
	ctx := newTestContext()
	p := ctx.Player
	lo, hi := p.Bounds(ctx.Playfield)
	if lo != -5 || hi != 115 {
		t.Fatalf("Bounds = [%v, %v], want [-5, 115]", lo, hi)
	}

	starts := []float64{-50, -5, 0, 55, 115, 200}
	pointers := []input.Pointer{{}, {Moved: true, X: -100}, {Moved: true, X: 60}, {Moved: true, X: 500}}

	for _, start := range starts {
		for _, ptr := range pointers {
			for _, left := range []bool{false, true} {
				for _, right := range []bool{false, true} {
					p.X = start
					ctx.Input = Input{Left: left, Right: right, Pointer: ptr}
					for frame := 0; frame < 120; frame++ {
						if _, err := p.Update(ctx); err != nil {
							t.Fatal(err)
						}
						if p.X < lo || p.X > hi {
							t.Fatalf("start %v left %v right %v pointer %+v: X = %v outside [%v, %v]",
								start, left, right, ptr, p.X, lo, hi)
						}
					}
				}
			}
		}
	}
}

func TestPlayerMovement(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantDX    float64
		wantFrame int
	}{
		{"Idle", Input{}, 0, FrameIdle},
		{"Left", Input{Left: true}, -1.2, FrameLeft},
		{"Right", Input{Right: true}, 1.2, FrameRight},
		{"Both cancel", Input{Left: true, Right: true}, 0, FrameIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			ctx.Input = tt.in
			start := ctx.Player.X
			_, _ = ctx.Player.Update(ctx)
			if got := ctx.Player.X - start; math.Abs(got-tt.wantDX) > 1e-9 {
				t.Errorf("dx = %v, want %v", got, tt.wantDX)
			}
			if ctx.Player.Frame != tt.wantFrame {
				t.Errorf("frame = %d, want %d", ctx.Player.Frame, tt.wantFrame)
			}
		})
	}
}

func TestPlayerPointer(t *testing.T) {
	ctx := newTestContext()
	ctx.Input = Input{Pointer: input.Pointer{Moved: true, X: 30}}
	_, _ = ctx.Player.Update(ctx)
	if ctx.Player.X != 25 {
		t.Errorf("X = %v, want ship centred on pointer at 25", ctx.Player.X)
	}

	ctx = newTestContext()
	ctx.Features.Pointer = false
	start := ctx.Player.X
	ctx.Input = Input{Pointer: input.Pointer{Moved: true, X: 30}}
	_, _ = ctx.Player.Update(ctx)
	if ctx.Player.X != start {
		t.Errorf("pointer moved the ship with the feature off: X = %v", ctx.Player.X)
	}
}

func TestPlayerClickFiresOnlyWithPointer(t *testing.T) {
	tests := []struct {
		name    string
		pointer bool
		want    int
	}{
		{"Pointer on", true, 1},
		{"Pointer off", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			ctx.Features.Pointer = tt.pointer
			ctx.Input = Input{Pointer: input.Pointer{Click: true}}
			_, _ = ctx.Player.Update(ctx)
			if got := ctx.Projectiles.Len(); got != tt.want {
				t.Errorf("projectiles in flight = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlayerFireCooldown(t *testing.T) {
	ctx := newTestContext()
	ctx.Input = Input{Fire: true}
	for range 20 {
		_, _ = ctx.Player.Update(ctx)
	}
	if got := ctx.Projectiles.Len(); got != 3 {
		t.Errorf("held fire for 20 frames launched %d projectiles, want 3", got)
	}
}

func TestPlayerFireRepress(t *testing.T) {
	ctx := newTestContext()
	for _, fire := range []bool{true, false, true} {
		ctx.Input = Input{Fire: fire}
		_, _ = ctx.Player.Update(ctx)
	}
	if got := ctx.Projectiles.Len(); got != 2 {
		t.Errorf("press, release, press launched %d projectiles, want 2", got)
	}
}

func TestPlayerShoot(t *testing.T) {
	s := config.Default()
	s.Projectile.PoolSize = 1
	projectiles := NewProjectilePool(s.Projectile)
	p := NewPlayer(s.Player, testField)

	if !p.Shoot(projectiles) {
		t.Fatal("first shot failed")
	}
	var launched *Projectile
	for _, pr := range projectiles.Active() {
		launched = pr
	}
	if launched.X+launched.W/2 != p.X+p.W/2 || launched.Y+launched.H != p.Y {
		t.Errorf("projectile at (%v, %v), want top centre of ship", launched.X, launched.Y)
	}

	if p.Shoot(projectiles) {
		t.Error("shot succeeded with the pool exhausted")
	}
	if projectiles.Len() != 1 {
		t.Errorf("pool in use = %d, want 1", projectiles.Len())
	}
}

func TestPlayerLives(t *testing.T) {
	s := config.Default()
	p := NewPlayer(s.Player, testField)

	for range 5 {
		p.LoseLife()
	}
	if p.Lives != 0 {
		t.Errorf("lives = %d after losing 5 of 3, want 0", p.Lives)
	}

	for range 20 {
		p.GainLife()
	}
	if p.Lives != p.MaxLives {
		t.Errorf("lives = %d after gaining 20, want max %d", p.Lives, p.MaxLives)
	}
}

func TestProjectileLeavesTop(t *testing.T) {
	projectiles := pool.New(1, func(int) Projectile {
		return Projectile{Box: Box{W: 1, H: 3}, Speed: 2}
	})
	h, _ := projectiles.Acquire()
	projectiles.Get(h).Launch(10, 3)
	if got := projectiles.Get(h).Y; got != 0 {
		t.Fatalf("launched Y = %v, want 0", got)
	}

	ctx := UpdateContext{Projectiles: projectiles}
	if err := UpdateProjectiles(ctx); err != nil {
		t.Fatal(err)
	}
	if projectiles.Len() != 1 {
		t.Fatal("projectile released while still partly visible")
	}
	if err := UpdateProjectiles(ctx); err != nil {
		t.Fatal(err)
	}
	if projectiles.Len() != 0 {
		t.Error("projectile above the playfield was not released")
	}
}
