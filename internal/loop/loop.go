package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/scoreboard"
)

// Screen is the phase of a terminal session.
type Screen int

const (
	ScreenTitle    Screen = iota // Title screen
	ScreenPlaying                // Active gameplay, including game over
	ScreenShutdown               // Server is shutting down
)

// Options configures a terminal session.
type Options struct {
	Settings     config.Settings
	Sprites      object.SpriteSet
	Board        *scoreboard.Board // Shared high scores; nil disables submission
	Username     string
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger

	// Seed fixes the game RNG; 0 seeds from the clock.
	Seed uint64

	// Inactivity enables the idle warning and disconnect.
	Inactivity bool
}

// session handles rendering and input for a single terminal.
type session struct {
	opts   Options
	logger *log.Logger

	state       *State
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter
	writer      io.Writer
	inputStream *input.Stream

	screen      Screen
	prevScreen  Screen
	input       input.Input
	delta       time.Duration
	running     bool
	submitted   bool
	lastInput   time.Time
	isInactive  bool
	wasInactive bool

	shutdownTimer float64
}

// Run plays one game session on a terminal until the player quits, the
// reader ends, or the session goes idle. Cancelling ctx shows the shutdown
// screen and ends the session after its countdown.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	s := newSession(r, w, opts)

	draw.HideCursor(w)
	draw.EnableMouse(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ResetStyle(w)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()
	draw.ClearScreen(w)

	lastTime := time.Now()
	for s.running {
		frameStart := time.Now()
		s.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if ctx.Err() != nil && s.screen != ScreenShutdown {
			s.logger.Info("shutdown notice shown", "user", opts.Username)
			s.screen = ScreenShutdown
			s.shutdownTimer = ShutdownDisplaySeconds
		}

		s.processInput()
		s.updateScreen()

		switch s.screen {
		case ScreenTitle:
			s.updateTitle()
		case ScreenPlaying:
			if err := s.updatePlaying(); err != nil {
				return err
			}
		case ScreenShutdown:
			s.updateShutdown()
		}

		if err := s.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}
	return nil
}

func newSession(r *bufio.Reader, w io.Writer, opts Options) *session {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
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
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight, pf.Width, pf.Height)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, pf.Width, pf.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &session{
		opts:        opts,
		logger:      logger,
		state:       NewState(opts.Settings, rng),
		canvas:      canvas,
		chunkWriter: draw.NewChunkWriter(w),
		writer:      w,
		inputStream: input.StartStream(r),
		screen:      ScreenTitle,
		prevScreen:  ScreenTitle,
		running:     true,
		lastInput:   time.Now(),
	}
}

// processInput reads this frame's input and tracks inactivity.
func (s *session) processInput() {
	s.input = input.ReadInput(s.inputStream)

	if s.inputStream.Closed() {
		s.running = false
	}

	if len(s.input.Pressed) > 0 {
		s.lastInput = time.Now()
		s.isInactive = false
	} else if s.opts.Inactivity {
		idle := time.Since(s.lastInput).Seconds()
		if idle > InactivityDisconnectUser {
			s.logger.Info("disconnecting idle session", "user", s.opts.Username)
			s.running = false
		} else if idle > InactivityWarnUser {
			s.isInactive = true
		}
	}

	if ptr := &s.input.Pointer; ptr.Moved {
		ptr.X, ptr.Y = s.canvas.TerminalToLogical(ptr.Col, ptr.Row)
	}

	if s.input.Quit {
		s.running = false
	}
}

// updateScreen handles terminal resize. On actual size changes it clears
// the terminal to remove residual pixels outside the new canvas area.
func (s *session) updateScreen() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	pf := s.state.Playfield
	renderWidth, renderHeight, offsetCol, offsetRow := fitTermSize(termWidth, termHeight, pf.Width, pf.Height)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.chunkWriter.ClearTerminal()
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
}

// fitTermSize picks the largest render area that fits the terminal, keeps
// square sub-pixels for the logical aspect ratio and respects the maximum
// render resolution. The offsets centre the area.
func fitTermSize(termWidth, termHeight int, logicalWidth, logicalHeight float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), MaxTermWidth)
	renderHeight = min(max(termHeight, 1), MaxTermHeight)

	// A terminal cell is one sub-pixel wide and two tall.
	if want := int(2 * float64(renderHeight) * logicalWidth / logicalHeight); want <= renderWidth {
		renderWidth = max(want, 1)
	} else {
		renderHeight = max(int(float64(renderWidth)*logicalHeight/(2*logicalWidth)), 1)
	}

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

func (s *session) updateTitle() {
	click := s.opts.Settings.Features.Pointer && s.input.Pointer.Click
	if s.input.Start || click {
		s.state.Restart()
		s.submitted = false
		s.screen = ScreenPlaying
		s.logger.Debug("game started", "user", s.opts.Username)
	}
}

func (s *session) updatePlaying() error {
	wasOver := s.state.GameOver
	if err := s.state.Update(s.delta, s.input); err != nil {
		return err
	}

	if wasOver && !s.state.GameOver {
		s.submitted = false
	}
	if s.state.GameOver && !s.submitted {
		s.submitted = true
		s.submitScore()
	}
	return nil
}

func (s *session) submitScore() {
	st := s.state
	s.logger.Info("game over", "user", s.opts.Username, "score", st.Score, "wave", st.Wave)
	if s.opts.Board == nil || !st.Settings.Features.Scoring {
		return
	}
	if rank := s.opts.Board.Submit(s.opts.Username, st.Score); rank > 0 {
		s.logger.Info("new high score", "user", s.opts.Username, "score", st.Score, "rank", rank)
	}
}

// updateShutdown counts down the shutdown screen.
func (s *session) updateShutdown() {
	s.shutdownTimer -= s.delta.Seconds()
	if s.shutdownTimer <= 0 {
		s.running = false
	}
}

// drawFrame draws the current frame.
func (s *session) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if s.screen != s.prevScreen || s.isInactive != s.wasInactive {
		s.chunkWriter.ClearTerminal()
		s.canvas.ForceRedraw()
		s.prevScreen = s.screen
		s.wasInactive = s.isInactive
	}

	s.canvas.Clear()
	pf := s.state.Playfield

	switch s.screen {
	case ScreenTitle:
		blink := time.Now().UnixMilli()/600%2 == 0
		DrawTitle(s.canvas, pf, s.opts.Board, blink)
	case ScreenPlaying:
		if err := s.state.Draw(s.canvas, s.opts.Sprites); err != nil {
			return err
		}
	case ScreenShutdown:
		drawShutdown(s.canvas, pf, s.shutdownTimer)
	}

	if s.isInactive && s.screen != ScreenShutdown {
		left := int(InactivityDisconnectUser - time.Since(s.lastInput).Seconds())
		drawInactivity(s.canvas, pf, max(left, 0))
	}

	if err := s.canvas.Render(s.chunkWriter); err != nil {
		return err
	}
	// Draw border when terminal exceeds the render area
	if err := s.canvas.RenderBorder(s.chunkWriter); err != nil {
		return err
	}
	return s.chunkWriter.Flush()
}
