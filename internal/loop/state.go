// Package loop provides the game model and the terminal session that drives it.
package loop

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/pool"
)

// State is one game in progress: everything Update changes and Draw reads.
// It performs no IO.
type State struct {
	Settings   config.Settings
	Playfield  object.Playfield
	Archetypes object.ArchetypeTable
	Rand       *rand.Rand

	Projectiles *pool.Pool[object.Projectile]
	Debris      *object.DebrisField
	Player      *object.Player
	Formation   *object.Formation

	Columns, Rows int // Grid size of the current wave
	Score         int
	Wave          int
	GameOver      bool

	Frame  int
	Events object.Events // What happened during the last frame

	spriteTimer time.Duration
	growRows    bool // Next wave grows by a row instead of a column
}

// NewState creates a game ready to play. A nil rng is seeded from the clock.
func NewState(s config.Settings, rng *rand.Rand) *State {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32|1))
	}
	pf := object.Playfield{Width: s.Playfield.Width, Height: s.Playfield.Height}
	st := &State{
		Settings:    s,
		Playfield:   pf,
		Archetypes:  object.NewArchetypeTable(s.Enemies),
		Rand:        rng,
		Projectiles: object.NewProjectilePool(s.Projectile),
		Debris:      object.NewDebrisField(s.Debris),
		Player:      object.NewPlayer(s.Player, pf),
	}
	st.Restart()
	return st
}

// Restart returns the game to its first wave. Pool capacities are kept.
func (s *State) Restart() {
	s.Projectiles.Reset()
	s.Debris.Reset()
	s.Player.Reset(s.Playfield, s.Settings.Player.Lives)

	s.Columns = s.Settings.Formation.Columns
	s.Rows = s.Settings.Formation.Rows
	s.Score = 0
	s.Wave = 1
	s.GameOver = false
	s.Frame = 0
	s.Events = object.Events{}
	s.spriteTimer = 0
	s.growRows = false

	s.Formation = s.newFormation()
}

func (s *State) newFormation() *object.Formation {
	return object.NewFormation(s.Columns, s.Rows, s.Settings.Formation, s.Archetypes, s.Playfield, s.Rand)
}

// Lives returns the player's remaining lives.
func (s *State) Lives() int { return s.Player.Lives }
