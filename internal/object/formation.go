package object

import (
	"math/rand/v2"

	"github.com/tomz197/invaders/internal/config"
)

// Phase is the lifecycle stage of a formation. Phases only move forward.
type Phase int

const (
	Descending Phase = iota // Entering from above the playfield
	Patrolling              // Sweeping side to side, stepping down at each wall
	Cleared                 // Every member removed
)

func (p Phase) String() string {
	switch p {
	case Descending:
		return "descending"
	case Patrolling:
		return "patrolling"
	case Cleared:
		return "cleared"
	}
	return "unknown"
}

// Formation is a grid of enemies that moves as one body.
type Formation struct {
	Box
	Columns, Rows int
	Cell          float64

	SpeedX       float64 // Signed horizontal speed while patrolling
	DescentSpeed float64
	RestY        float64 // Where descending ends

	Phase   Phase
	Enemies []*Enemy
}

// NewFormation builds a cols x rows wave above the playfield, horizontally
// centred, with archetypes drawn from table.
func NewFormation(cols, rows int, s config.FormationSettings, table ArchetypeTable, pf Playfield, rng *rand.Rand) *Formation {
	cols, rows = max(cols, 1), max(rows, 1)
	w := float64(cols) * s.CellSize
	h := float64(rows) * s.CellSize

	speed := s.Speed
	if rng.IntN(2) == 0 {
		speed = -speed
	}

	f := &Formation{
		Box:          Box{X: (pf.Width - w) / 2, Y: -h, W: w, H: h},
		Columns:      cols,
		Rows:         rows,
		Cell:         s.CellSize,
		SpeedX:       speed,
		DescentSpeed: s.DescentSpeed,
		RestY:        s.RestY,
		Phase:        Descending,
		Enemies:      make([]*Enemy, 0, cols*rows),
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			kind := table.Pick(rng)
			variant := rng.IntN(max(kind.Variants, 1))
			e := NewEnemy(kind, float64(x)*s.CellSize, float64(y)*s.CellSize, s.CellSize, variant)
			e.Place(f.X, f.Y)
			f.Enemies = append(f.Enemies, e)
		}
	}
	return f
}

// Update moves the formation, updates its members and drops removed ones.
// It reports true once the formation is cleared.
func (f *Formation) Update(ctx UpdateContext) (bool, error) {
	switch f.Phase {
	case Cleared:
		return true, nil
	case Descending:
		f.Y += f.DescentSpeed
		if f.Y >= f.RestY {
			f.Y = f.RestY
			f.Phase = Patrolling
		}
	case Patrolling:
		f.patrol(ctx.Playfield)
	}

	for _, e := range f.Enemies {
		e.Place(f.X, f.Y)
		if _, err := e.Update(ctx); err != nil {
			return false, err
		}
	}

	alive := f.Enemies[:0]
	for _, e := range f.Enemies {
		if !e.IsDestroyed() {
			alive = append(alive, e)
		}
	}
	clear(f.Enemies[len(alive):])
	f.Enemies = alive

	if len(f.Enemies) == 0 {
		f.Phase = Cleared
	}
	return f.Phase == Cleared, nil
}

// patrol moves sideways; touching a wall snaps to it, reverses and steps down one cell.
func (f *Formation) patrol(pf Playfield) {
	f.X += f.SpeedX
	switch {
	case f.X < 0:
		f.X = 0
	case f.X+f.W > pf.Width:
		f.X = pf.Width - f.W
	default:
		return
	}
	f.SpeedX = -f.SpeedX
	f.Y += f.Cell
}

// Draw renders every member.
func (f *Formation) Draw(ctx DrawContext) error {
	for _, e := range f.Enemies {
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
