package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if s.Player.Lives != Default().Player.Lives {
		t.Errorf("lives = %d, want default %d", s.Player.Lives, Default().Player.Lives)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invaders.yaml")
	content := `
features:
  debris: false
player:
  lives: 5
sprite_interval: 250ms
enemies:
  - name: drone
    hit_points: 2
    points: 7
    weight: 1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if s.Features.Debris {
		t.Error("features.debris = true, want false")
	}
	if !s.Features.Scoring {
		t.Error("features.scoring lost its default")
	}
	if s.Player.Lives != 5 {
		t.Errorf("player.lives = %d, want 5", s.Player.Lives)
	}
	if s.Player.MaxLives != Default().Player.MaxLives {
		t.Errorf("player.max_lives = %d, want default", s.Player.MaxLives)
	}
	if s.SpriteInterval != 250*time.Millisecond {
		t.Errorf("sprite_interval = %v, want 250ms", s.SpriteInterval)
	}
	if len(s.Enemies) != 1 || s.Enemies[0].Name != "drone" || s.Enemies[0].Points != 7 {
		t.Errorf("enemies = %+v, want single drone archetype", s.Enemies)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player:\n  lives: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("Load error = %v, want ErrInvalidSettings", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"Zero playfield", func(s *Settings) { s.Playfield.Width = 0 }},
		{"No lives", func(s *Settings) { s.Player.Lives = 0 }},
		{"Inset out of range", func(s *Settings) { s.Player.EdgeInset = 1.5 }},
		{"Empty pool", func(s *Settings) { s.Projectile.PoolSize = 0 }},
		{"No columns", func(s *Settings) { s.Formation.Columns = 0 }},
		{"Formation too wide", func(s *Settings) { s.Formation.Columns = 100 }},
		{"Growth fraction", func(s *Settings) { s.Formation.MaxHeightFraction = 0 }},
		{"No archetypes", func(s *Settings) { s.Enemies = nil }},
		{"Zero hit points", func(s *Settings) { s.Enemies[0].HitPoints = 0 }},
		{"Zero weights", func(s *Settings) {
			for i := range s.Enemies {
				s.Enemies[i].Weight = 0
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() = %v, want ErrInvalidSettings", err)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("INVADERS_TEST_INT", "42")
	if got := GetEnvInt("INVADERS_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	t.Setenv("INVADERS_TEST_INT", "nope")
	if got := GetEnvInt("INVADERS_TEST_INT", 1); got != 1 {
		t.Errorf("GetEnvInt(unparsable) = %d, want fallback 1", got)
	}
	if got := GetEnv("INVADERS_TEST_UNSET", "x"); got != "x" {
		t.Errorf("GetEnv(unset) = %q, want fallback", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("INVADERS_TEST_DOTENV=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVADERS_TEST_DOTENV", "")
	os.Unsetenv("INVADERS_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if got := os.Getenv("INVADERS_TEST_DOTENV"); got != "from-file" {
		t.Errorf("INVADERS_TEST_DOTENV = %q, want from-file", got)
	}
}

func TestNewFileLogger(t *testing.T) {
	logger, closeFn, err := NewFileLogger("", "test")
	if err != nil || logger == nil || closeFn == nil {
		t.Fatalf("NewFileLogger(\"\") = %v, %v", logger, err)
	}

	path := filepath.Join(t.TempDir(), "game.log")
	logger, closeFn, err = NewFileLogger(path, "test")
	if err != nil {
		t.Fatalf("NewFileLogger error: %v", err)
	}
	logger.Info("hello", "score", 3)
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "score=3") {
		t.Errorf("log file = %q", data)
	}
}

func TestExampleSettingsFile(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "invaders.example.yaml"))
	if err != nil {
		t.Fatalf("Load example: %v", err)
	}
	def := Default()
	if len(s.Enemies) != len(def.Enemies) {
		t.Fatalf("example has %d archetypes, defaults have %d", len(s.Enemies), len(def.Enemies))
	}
	for i := range s.Enemies {
		if s.Enemies[i] != def.Enemies[i] {
			t.Errorf("archetype %d = %+v, want %+v", i, s.Enemies[i], def.Enemies[i])
		}
	}
	if s.SpriteInterval != def.SpriteInterval {
		t.Errorf("sprite_interval = %v", s.SpriteInterval)
	}
}
