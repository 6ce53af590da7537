package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/object"
)

// Update advances the game by one frame.
//
// Order: restart request, game-over freeze, sprite timer, projectiles,
// player, formation (and the next wave when it is cleared), then scoring
// and the game-over check.
func (s *State) Update(delta time.Duration, in object.Input) error {
	s.Frame++

	ctx := object.UpdateContext{
		Frame:       s.Frame,
		Delta:       delta,
		Input:       in,
		Playfield:   s.Playfield,
		Projectiles: s.Projectiles,
		Player:      s.Player,
		Debris:      s.Debris,
		Features:    s.Settings.Features,
		Events:      &object.Events{},
		Rand:        s.Rand,
	}

	if s.GameOver {
		if in.Restart {
			s.Restart()
			return nil
		}
		// Gameplay is frozen; debris still settles.
		_, err := s.Debris.Update(ctx)
		return err
	}

	ctx.SpriteTick = s.advanceSpriteTimer(delta)

	if err := object.UpdateProjectiles(ctx); err != nil {
		return err
	}
	if _, err := s.Player.Update(ctx); err != nil {
		return err
	}

	cleared, err := s.Formation.Update(ctx)
	if err != nil {
		return err
	}
	// A wave cleared by the hit that took the last life does not grant
	// the bonus life.
	if cleared && s.Player.Lives > 0 && !ctx.Events.Breach {
		s.nextWave()
	}

	if _, err := s.Debris.Update(ctx); err != nil {
		return err
	}

	s.applyEvents(*ctx.Events)
	return nil
}

// advanceSpriteTimer reports whether sprite animations step this frame.
func (s *State) advanceSpriteTimer(delta time.Duration) bool {
	interval := s.Settings.SpriteInterval
	if interval <= 0 {
		return true
	}
	if s.spriteTimer >= interval {
		s.spriteTimer = 0
		return true
	}
	s.spriteTimer += delta
	return false
}

func (s *State) applyEvents(ev object.Events) {
	s.Events = ev
	if s.Settings.Features.Scoring {
		s.Score += ev.Points
	}
	if ev.Breach || s.Player.Lives <= 0 {
		s.GameOver = true
	}
}

// nextWave replaces a cleared formation. Waves grow alternately by a column
// and a row while each stays under its share of the playfield; a capped
// dimension hands its turn to the other. Every new wave grants a life.
func (s *State) nextWave() {
	if !s.Settings.Features.Waves {
		s.Columns = s.Settings.Formation.Columns
		s.Rows = s.Settings.Formation.Rows
		s.Formation = s.newFormation()
		return
	}

	f := s.Settings.Formation
	canGrowCols := float64(s.Columns+1)*f.CellSize <= s.Playfield.Width*f.MaxWidthFraction
	canGrowRows := float64(s.Rows+1)*f.CellSize <= s.Playfield.Height*f.MaxHeightFraction

	switch {
	case !s.growRows && canGrowCols:
		s.Columns++
	case s.growRows && canGrowRows:
		s.Rows++
	case canGrowCols:
		s.Columns++
	case canGrowRows:
		s.Rows++
	}
	s.growRows = !s.growRows

	s.Wave++
	s.Player.GainLife()
	s.Formation = s.newFormation()
}
