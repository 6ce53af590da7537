package object

import (
	"image/color"
	"testing"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw/drawtest"
)

func TestDebrisBurstExhaustsSilently(t *testing.T) {
	s := config.Default().Debris
	s.PoolSize = 5
	d := NewDebrisField(s)

	d.Burst(10, 10, color.RGBA{R: 255, A: 255}, testRand())
	if d.Len() != 5 {
		t.Errorf("live particles = %d, want pool size 5", d.Len())
	}
	d.Burst(10, 10, color.RGBA{R: 255, A: 255}, testRand())
	if d.Len() != 5 {
		t.Errorf("live particles = %d after second burst, want 5", d.Len())
	}
}

func TestDebrisSettles(t *testing.T) {
	s := config.Default().Debris
	d := NewDebrisField(s)
	d.Burst(10, 10, color.RGBA{G: 255, A: 255}, testRand())

	rec := drawtest.New(120, 80)
	_ = d.Draw(DrawContext{Surface: rec})
	if got := len(rec.Ops); got != s.Burst {
		t.Errorf("drew %d particles, want %d", got, s.Burst)
	}

	for range s.Life {
		_, _ = d.Update(UpdateContext{})
	}
	if d.Len() != 0 {
		t.Errorf("live particles = %d after max lifetime, want 0", d.Len())
	}

	d.Burst(10, 10, color.RGBA{G: 255, A: 255}, testRand())
	d.Reset()
	if d.Len() != 0 {
		t.Error("Reset left particles alive")
	}
}
