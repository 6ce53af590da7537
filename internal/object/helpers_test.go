package object

import (
	"math/rand/v2"

	"github.com/tomz197/invaders/internal/config"
)

var testField = Playfield{Width: 120, Height: 80}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// newTestContext returns a context with default settings, an empty
// projectile pool and a player at the bottom centre.
func newTestContext() UpdateContext {
	s := config.Default()
	return UpdateContext{
		Playfield:   testField,
		Projectiles: NewProjectilePool(s.Projectile),
		Player:      NewPlayer(s.Player, testField),
		Debris:      NewDebrisField(s.Debris),
		Features:    s.Features,
		Events:      &Events{},
		Rand:        testRand(),
	}
}

func archetype(name string) Archetype {
	for _, a := range NewArchetypeTable(config.Default().Enemies) {
		if a.Name == name {
			return a
		}
	}
	panic("unknown archetype " + name)
}
