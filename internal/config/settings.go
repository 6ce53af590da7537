package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds every tunable game parameter. Distances are in logical
// playfield units and speeds in units per frame.
type Settings struct {
	Features   Features           `yaml:"features"`
	Playfield  PlayfieldSettings  `yaml:"playfield"`
	Player     PlayerSettings     `yaml:"player"`
	Projectile ProjectileSettings `yaml:"projectile"`
	Formation  FormationSettings  `yaml:"formation"`
	Debris     DebrisSettings     `yaml:"debris"`

	// SpriteInterval is the time between sprite animation steps.
	SpriteInterval time.Duration `yaml:"sprite_interval"`

	Enemies []Archetype `yaml:"enemies"`
}

// Features toggles optional gameplay layers.
type Features struct {
	Scoring bool `yaml:"scoring"`
	Waves   bool `yaml:"waves"`
	Lives   bool `yaml:"lives"`
	Sprites bool `yaml:"sprites"`
	Debris  bool `yaml:"debris"`
	Pointer bool `yaml:"pointer"`
}

// PlayfieldSettings is the logical size of the play area.
type PlayfieldSettings struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerSettings configures the player ship.
type PlayerSettings struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`

	Lives    int `yaml:"lives"`
	MaxLives int `yaml:"max_lives"`

	// EdgeInset is the fraction of the ship allowed past either side wall.
	EdgeInset float64 `yaml:"edge_inset"`

	// FireCooldown is the minimum number of frames between shots while fire is held.
	FireCooldown int `yaml:"fire_cooldown"`

	Sheet       string `yaml:"sheet"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	Color       string `yaml:"color"`
}

// ProjectileSettings configures the player's pooled projectiles.
type ProjectileSettings struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	PoolSize int     `yaml:"pool_size"`
	Color    string  `yaml:"color"`
}

// FormationSettings configures enemy waves.
type FormationSettings struct {
	CellSize     float64 `yaml:"cell_size"`
	Columns      int     `yaml:"columns"`
	Rows         int     `yaml:"rows"`
	Speed        float64 `yaml:"speed"`
	DescentSpeed float64 `yaml:"descent_speed"`
	RestY        float64 `yaml:"rest_y"`

	// Growth caps: a wave only widens while columns*cell < width*MaxWidthFraction,
	// and only deepens while rows*cell < height*MaxHeightFraction.
	MaxWidthFraction  float64 `yaml:"max_width_fraction"`
	MaxHeightFraction float64 `yaml:"max_height_fraction"`
}

// DebrisSettings configures the explosion effect.
type DebrisSettings struct {
	PoolSize int     `yaml:"pool_size"`
	Burst    int     `yaml:"burst"`
	Speed    float64 `yaml:"speed"`
	Life     int     `yaml:"life"`
	Drag     float64 `yaml:"drag"`
}

// Archetype describes one kind of enemy.
type Archetype struct {
	Name        string `yaml:"name"`
	Sheet       string `yaml:"sheet"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`

	// Variants is the number of sheet rows; each enemy picks one at random.
	Variants int `yaml:"variants"`

	HitPoints int `yaml:"hit_points"`
	Points    int `yaml:"points"`

	// DamageFrames is the number of sheet columns showing increasing damage
	// while alive. DeathFrames columns follow them.
	DamageFrames int `yaml:"damage_frames"`
	DeathFrames  int `yaml:"death_frames"`

	Weight float64 `yaml:"weight"`
	Color  string  `yaml:"color"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Features: Features{
			Scoring: true,
			Waves:   true,
			Lives:   true,
			Sprites: true,
			Debris:  true,
			Pointer: true,
		},
		Playfield: PlayfieldSettings{Width: 120, Height: 80},
		Player: PlayerSettings{
			Width:        10,
			Height:       6,
			Speed:        1.2,
			Lives:        3,
			MaxLives:     10,
			EdgeInset:    0.5,
			FireCooldown: 8,
			Sheet:        "player.png",
			FrameWidth:   10,
			FrameHeight:  6,
			Color:        "#66ccff",
		},
		Projectile: ProjectileSettings{
			Width:    1,
			Height:   3,
			Speed:    2,
			PoolSize: 10,
			Color:    "#ffdd00",
		},
		Formation: FormationSettings{
			CellSize:          8,
			Columns:           2,
			Rows:              2,
			Speed:             0.4,
			DescentSpeed:      0.5,
			RestY:             0,
			MaxWidthFraction:  0.8,
			MaxHeightFraction: 0.6,
		},
		Debris: DebrisSettings{
			PoolSize: 128,
			Burst:    12,
			Speed:    1.2,
			Life:     24,
			Drag:     0.92,
		},
		SpriteInterval: 120 * time.Millisecond,
		Enemies: []Archetype{
			{
				Name:         "beetlemorph",
				Sheet:        "beetlemorph.png",
				FrameWidth:   8,
				FrameHeight:  8,
				Variants:     4,
				HitPoints:    1,
				Points:       1,
				DamageFrames: 1,
				DeathFrames:  2,
				Weight:       0.7,
				Color:        "#ff6666",
			},
			{
				Name:         "rhinomorph",
				Sheet:        "rhinomorph.png",
				FrameWidth:   8,
				FrameHeight:  8,
				Variants:     4,
				HitPoints:    4,
				Points:       4,
				DamageFrames: 4,
				DeathFrames:  2,
				Weight:       0.3,
				Color:        "#ff9900",
			},
		},
	}
}

// Load reads a YAML settings file on top of Default. An empty path
// returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports every setting that would make the game unplayable.
func (s Settings) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
	}

	if s.Playfield.Width <= 0 || s.Playfield.Height <= 0 {
		fail("playfield must have positive size, got %vx%v", s.Playfield.Width, s.Playfield.Height)
	}

	p := s.Player
	if p.Width <= 0 || p.Height <= 0 {
		fail("player must have positive size")
	}
	if p.Speed < 0 {
		fail("player speed must not be negative")
	}
	if p.MaxLives < 1 || p.Lives < 1 || p.Lives > p.MaxLives {
		fail("player lives must satisfy 1 <= lives (%d) <= max_lives (%d)", p.Lives, p.MaxLives)
	}
	if p.EdgeInset < 0 || p.EdgeInset > 1 {
		fail("player edge_inset must be within [0, 1], got %v", p.EdgeInset)
	}
	if p.FireCooldown < 0 {
		fail("player fire_cooldown must not be negative")
	}

	pr := s.Projectile
	if pr.Width <= 0 || pr.Height <= 0 || pr.Speed <= 0 {
		fail("projectile size and speed must be positive")
	}
	if pr.PoolSize < 1 {
		fail("projectile pool_size must be at least 1")
	}

	f := s.Formation
	if f.CellSize <= 0 {
		fail("formation cell_size must be positive")
	}
	if f.Columns < 1 || f.Rows < 1 {
		fail("formation needs at least one column and row")
	}
	if f.Speed <= 0 || f.DescentSpeed <= 0 {
		fail("formation speeds must be positive")
	}
	if f.MaxWidthFraction <= 0 || f.MaxWidthFraction > 1 || f.MaxHeightFraction <= 0 || f.MaxHeightFraction > 1 {
		fail("formation growth fractions must be within (0, 1]")
	}
	if float64(f.Columns)*f.CellSize > s.Playfield.Width {
		fail("initial formation (%d columns) is wider than the playfield", f.Columns)
	}

	if s.Debris.PoolSize < 1 {
		fail("debris pool_size must be at least 1")
	}
	if s.SpriteInterval < 0 {
		fail("sprite_interval must not be negative")
	}

	if len(s.Enemies) == 0 {
		fail("at least one enemy archetype is required")
	}
	var weight float64
	for i, a := range s.Enemies {
		if a.HitPoints < 1 {
			fail("enemy %d (%s): hit_points must be at least 1", i, a.Name)
		}
		if a.DeathFrames < 0 || a.DamageFrames < 0 {
			fail("enemy %d (%s): frame counts must not be negative", i, a.Name)
		}
		if a.Weight < 0 {
			fail("enemy %d (%s): weight must not be negative", i, a.Name)
		}
		weight += a.Weight
	}
	if len(s.Enemies) > 0 && weight <= 0 {
		fail("enemy weights must sum to a positive value")
	}

	return errors.Join(errs...)
}
