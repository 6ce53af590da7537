package desktop

import (
	"fmt"
	"image"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/scoreboard"
)

// Options configures a desktop game.
type Options struct {
	Settings config.Settings
	Sprites  object.SpriteSet
	Board    *scoreboard.Board
	Username string
	Logger   *log.Logger
	Scale    float64
	Seed     uint64
	ShowTPS  bool
}

// Game implements ebiten.Game around a loop.State.
type Game struct {
	opts    Options
	logger  *log.Logger
	state   *loop.State
	surface *Surface

	screen    loop.Screen
	submitted bool
	cursor    image.Point
	started   time.Time
}

// NewGame prepares a game showing the title screen.
func NewGame(opts Options) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 6
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}
	pf := opts.Settings.Playfield
	return &Game{
		opts:    opts,
		logger:  logger,
		state:   loop.NewState(opts.Settings, rng),
		surface: NewSurface(pf.Width, pf.Height, opts.Scale),
		screen:  loop.ScreenTitle,
		started: time.Now(),
	}
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(opts Options) error {
	g := NewGame(opts)
	w, h := g.surface.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetTPS(loop.TargetFPS)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	in := g.readInput()
	if in.Quit {
		return ebiten.Termination
	}
	return g.step(in)
}

func (g *Game) step(in object.Input) error {
	if g.screen == loop.ScreenTitle {
		if in.Start {
			g.state.Restart()
			g.submitted = false
			g.screen = loop.ScreenPlaying
		}
		return nil
	}

	wasOver := g.state.GameOver
	if err := g.state.Update(loop.TargetFrameTime, in); err != nil {
		return err
	}
	if wasOver && !g.state.GameOver {
		g.submitted = false
	}
	if g.state.GameOver && !g.submitted {
		g.submitted = true
		g.logger.Info("game over", "score", g.state.Score, "wave", g.state.Wave)
		if g.opts.Board != nil && g.state.Settings.Features.Scoring {
			g.opts.Board.Submit(g.opts.Username, g.state.Score)
		}
	}
	return nil
}

// readInput samples the keyboard and mouse for this tick.
func (g *Game) readInput() object.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	justPressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	mouse := g.opts.Settings.Features.Pointer
	click := mouse && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in := object.Input{
		Left:    pressed(ebiten.KeyA, ebiten.KeyJ, ebiten.KeyArrowLeft),
		Right:   pressed(ebiten.KeyD, ebiten.KeyL, ebiten.KeyArrowRight),
		Fire:    pressed(ebiten.KeySpace, ebiten.KeyDigit1) || (mouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)),
		Start:   justPressed(ebiten.KeySpace, ebiten.KeyDigit1, ebiten.KeyEnter) || click,
		Restart: justPressed(ebiten.KeyR),
		Quit:    justPressed(ebiten.KeyQ, ebiten.KeyEscape),
	}

	cx, cy := ebiten.CursorPosition()
	cur := image.Pt(cx, cy)
	in.Pointer = input.Pointer{
		Col:   cx,
		Row:   cy,
		X:     float64(cx) / g.surface.Scale,
		Y:     float64(cy) / g.surface.Scale,
		Moved: cur != g.cursor,
		Click: click,
	}
	g.cursor = cur
	return in
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Bind(screen)
	switch g.screen {
	case loop.ScreenTitle:
		blink := time.Since(g.started).Milliseconds()/600%2 == 0
		loop.DrawTitle(g.surface, g.state.Playfield, g.opts.Board, blink)
	default:
		if err := g.state.Draw(g.surface, g.opts.Sprites); err != nil {
			g.logger.Error("draw failed", "err", err)
		}
	}
	if g.opts.ShowTPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()))
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.surface.ScreenSize()
}
