package object

import (
	"testing"

	"github.com/tomz197/invaders/internal/config"
)

func newTestFormation(cols, rows int) *Formation {
	s := config.Default()
	return NewFormation(cols, rows, s.Formation, NewArchetypeTable(s.Enemies), testField, testRand())
}

func TestNewFormationLayout(t *testing.T) {
	f := newTestFormation(3, 2)

	if f.W != 24 || f.H != 16 {
		t.Errorf("size = %vx%v, want 24x16", f.W, f.H)
	}
	if f.X != 48 || f.Y != -16 {
		t.Errorf("origin = (%v, %v), want centred above the playfield at (48, -16)", f.X, f.Y)
	}
	if f.Phase != Descending {
		t.Errorf("phase = %v, want descending", f.Phase)
	}
	if len(f.Enemies) != 6 {
		t.Fatalf("members = %d, want 6", len(f.Enemies))
	}
	last := f.Enemies[5]
	if last.X != f.X+16 || last.Y != f.Y+8 {
		t.Errorf("last member at (%v, %v), want formation origin + (16, 8)", last.X, last.Y)
	}
	for _, e := range f.Enemies {
		if e.Variant < 0 || e.Variant >= e.Kind.Variants {
			t.Errorf("variant %d out of range for %s", e.Variant, e.Kind.Name)
		}
	}
}

func TestFormationDescendsThenPatrols(t *testing.T) {
	ctx := newTestContext()
	f := newTestFormation(2, 2)
	startX := f.X

	transitions := 0
	prev := f.Phase
	for range 200 {
		if _, err := f.Update(ctx); err != nil {
			t.Fatal(err)
		}
		if f.Phase == Descending {
			if f.X != startX {
				t.Fatalf("moved sideways while descending: X = %v", f.X)
			}
			if f.Y > f.RestY {
				t.Fatalf("descended past rest: Y = %v", f.Y)
			}
		}
		if prev == Descending && f.Phase == Patrolling {
			transitions++
			if f.Y != f.RestY {
				t.Errorf("patrol began at Y = %v, want rest %v", f.Y, f.RestY)
			}
		}
		if f.Phase < prev {
			t.Fatalf("phase went back from %v to %v", prev, f.Phase)
		}
		prev = f.Phase
	}

	if transitions != 1 {
		t.Errorf("descending -> patrolling happened %d times, want 1", transitions)
	}
	if f.Phase != Patrolling {
		t.Errorf("phase = %v, want patrolling", f.Phase)
	}
}

func TestFormationBounce(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		speed  float64
		wantX  float64
		wantVX float64
	}{
		{"Right wall", 120 - 16 - 0.1, 0.4, 104, -0.4},
		{"Left wall", 0.1, -0.4, 0, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			f := newTestFormation(2, 2)
			f.Phase = Patrolling
			f.X, f.Y = tt.x, 0
			f.SpeedX = tt.speed

			_, _ = f.Update(ctx)

			if f.X != tt.wantX {
				t.Errorf("X = %v, want snapped to %v", f.X, tt.wantX)
			}
			if f.SpeedX != tt.wantVX {
				t.Errorf("SpeedX = %v, want %v", f.SpeedX, tt.wantVX)
			}
			if f.Y != f.Cell {
				t.Errorf("Y = %v, want one cell down (%v)", f.Y, f.Cell)
			}
			for _, e := range f.Enemies {
				if e.X < f.X || e.X+e.W > f.X+f.W {
					t.Errorf("member at X = %v outside formation", e.X)
				}
			}
		})
	}
}

func TestFormationCleared(t *testing.T) {
	ctx := newTestContext()
	f := newTestFormation(2, 1)

	f.Enemies[0].MarkDestroyed()
	if done, _ := f.Update(ctx); done {
		t.Fatal("cleared with a member left")
	}
	if len(f.Enemies) != 1 {
		t.Fatalf("members = %d, want 1", len(f.Enemies))
	}

	f.Enemies[0].MarkDestroyed()
	if done, _ := f.Update(ctx); !done {
		t.Fatal("not cleared after every member was removed")
	}
	if f.Phase != Cleared || len(f.Enemies) != 0 {
		t.Errorf("phase %v with %d members, want cleared and empty", f.Phase, len(f.Enemies))
	}
	if ctx.Events.Points != 0 {
		t.Errorf("points = %d for destroyed members, want 0", ctx.Events.Points)
	}

	if done, _ := f.Update(ctx); !done || f.Phase != Cleared {
		t.Error("cleared formation changed phase")
	}
}
