package object

import (
	"image/color"
	"math/rand/v2"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
)

// Archetype is one kind of enemy.
type Archetype struct {
	Name         string
	Sheet        string
	FrameW       int
	FrameH       int
	Variants     int // Sheet rows to choose from
	HitPoints    int
	Points       int
	DamageFrames int // Columns shown while alive, one per lost hit point
	DeathFrames  int // Sprite steps of the dying window
	Weight       float64
	Color        color.RGBA
}

// ArchetypeTable is the set of enemies a formation draws from.
type ArchetypeTable []Archetype

var defaultEnemyColor = color.RGBA{R: 255, G: 102, B: 102, A: 255}

// NewArchetypeTable converts configured archetypes, filling in usable
// minimums for counts left at zero.
func NewArchetypeTable(cfg []config.Archetype) ArchetypeTable {
	t := make(ArchetypeTable, 0, len(cfg))
	for _, a := range cfg {
		t = append(t, Archetype{
			Name:         a.Name,
			Sheet:        a.Sheet,
			FrameW:       max(a.FrameWidth, 1),
			FrameH:       max(a.FrameHeight, 1),
			Variants:     max(a.Variants, 1),
			HitPoints:    max(a.HitPoints, 1),
			Points:       a.Points,
			DamageFrames: max(a.DamageFrames, 1),
			DeathFrames:  max(a.DeathFrames, 0),
			Weight:       a.Weight,
			Color:        draw.ColorOr(a.Color, defaultEnemyColor),
		})
	}
	return t
}

// Pick chooses an archetype with probability proportional to its weight.
// When no weight is positive the first archetype is returned.
func (t ArchetypeTable) Pick(rng *rand.Rand) Archetype {
	if len(t) == 0 {
		return Archetype{Name: "enemy", FrameW: 1, FrameH: 1, Variants: 1, HitPoints: 1, Points: 1, DamageFrames: 1, Color: defaultEnemyColor}
	}

	var total float64
	for _, a := range t {
		total += max(a.Weight, 0)
	}
	if total <= 0 {
		return t[0]
	}

	r := rng.Float64() * total
	last := 0
	for i, a := range t {
		if a.Weight <= 0 {
			continue
		}
		last = i
		if r < a.Weight {
			return a
		}
		r -= a.Weight
	}
	return t[last]
}
