package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/assets"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/scoreboard"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run plays one game on stdin/stdout. Deferred cleanup always runs before
// main decides the exit code.
func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	logger, closeLog, err := config.NewFileLogger(config.GetEnv("INVADERS_LOG", ""), "game")
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		logger.Error("failed to load settings", "err", err)
		return fmt.Errorf("failed to load settings: %w", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Error("failed to enable raw mode", "err", err)
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := loop.Options{
		Settings: settings,
		Sprites:  assets.LoadSprites(assets.Dir(config.GetEnv("INVADERS_ASSETS", "")), settings, logger),
		Board:    scoreboard.New(10),
		Username: config.GetEnv("USER", "player"),
		Logger:   logger,
		Seed:     uint64(config.GetEnvInt("INVADERS_SEED", 0)),
	}

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(context.Background(), reader, os.Stdout, opts); err != nil {
		logger.Error("game error", "err", err)
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}
