package main

import (
	"os"
	"strconv"

	"github.com/tomz197/invaders/internal/assets"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/desktop"
	"github.com/tomz197/invaders/internal/scoreboard"
)

const defaultScale = 6.0

func main() {
	logger := config.NewLogger(os.Stderr, "desktop")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}

	settings, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}

	scale, err := strconv.ParseFloat(config.GetEnv("DESKTOP_SCALE", ""), 64)
	if err != nil || scale <= 0 {
		scale = defaultScale
	}

	opts := desktop.Options{
		Settings: settings,
		Sprites:  assets.LoadSprites(assets.Dir(config.GetEnv("INVADERS_ASSETS", "")), settings, logger),
		Board:    scoreboard.New(10),
		Username: config.GetEnv("USER", "player"),
		Logger:   logger,
		Scale:    scale,
		Seed:     uint64(config.GetEnvInt("INVADERS_SEED", 0)),
		ShowTPS:  config.GetEnv("DESKTOP_SHOW_TPS", "") != "",
	}

	logger.Info("opening window", "scale", scale)
	if err := desktop.Run(opts); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
