package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/invaders/internal/assets"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/scoreboard"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	scoreboardSize  = 20
	shutdownTimeout = 15 * time.Second
)

// server holds what every SSH session shares.
type server struct {
	logger   *log.Logger
	settings config.Settings
	sprites  object.SpriteSet
	board    *scoreboard.Board

	// ctx is cancelled when the server starts shutting down.
	ctx      context.Context
	sessions sync.WaitGroup

	mu      sync.Mutex
	closing bool
}

// begin registers a new session. It reports false once shutdown has started.
func (srv *server) begin() bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.closing {
		return false
	}
	srv.sessions.Add(1)
	return true
}

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	settings, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}

	ctx, cancelSessions := context.WithCancel(context.Background())
	srv := &server{
		logger:   logger,
		settings: settings,
		sprites:  assets.LoadSprites(assets.Dir(config.GetEnv("INVADERS_ASSETS", "")), settings, logger),
		board:    scoreboard.New(scoreboardSize),
		ctx:      ctx,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Sessions switch to the shutdown screen and disconnect after its countdown.
	cancelSessions()
	if srv.wait(shutdownTimeout) {
		logger.Info("all sessions ended")
	} else {
		logger.Warn("sessions still connected after timeout", "timeout", shutdownTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// wait refuses new sessions, then blocks until every session has ended or
// timeout passes. It reports whether the sessions ended in time.
func (srv *server) wait(timeout time.Duration) bool {
	srv.mu.Lock()
	srv.closing = true
	srv.mu.Unlock()

	ended := make(chan struct{})
	go func() {
		srv.sessions.Wait()
		close(ended)
	}()
	select {
	case <-ended:
		return true
	case <-time.After(timeout):
		return false
	}
}

// gameMiddleware handles SSH sessions and runs one game per PTY.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if !srv.begin() {
			fmt.Fprintln(sess, "The server is shutting down. Please reconnect in a moment.")
			return
		}
		defer srv.sessions.Done()

		srv.logger.Info("new game session", "user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := loop.Options{
			Settings:     srv.settings,
			Sprites:      srv.sprites,
			Board:        srv.board,
			Username:     sess.User(),
			TermSizeFunc: sizeTracker.getSize,
			Logger:       srv.logger.With("user", sess.User()),
			Inactivity:   true,
		}

		reader := bufio.NewReader(sess)
		if err := loop.Run(srv.ctx, reader, sess, opts); err != nil {
			srv.logger.Error("game error", "user", sess.User(), "err", err)
		}

		srv.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
