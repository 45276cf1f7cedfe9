package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/muesli/termenv"

	"github.com/ivymerfe/bullscows/internal/core"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.bullscows/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Defaults are the settings offered to every player.
	Defaults core.GameParameters

	// Seed for secret generation. Connection n (from 0) uses Seed+n; 0 seeds from the clock.
	Seed int64

	// Console settings applied to each session.
	MaxAttempts    int
	MaxTimeToGuess int
	RedrawInterval time.Duration
	PollInterval   time.Duration

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 15 * time.Minute,
		Defaults:    core.DefaultParameters(),
	}
}

// SSHServer serves bulls & cows sessions over SSH, one game per connection.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	logger   *log.Logger
	sessions atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "bullscows-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".bullscows", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.gameMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// gameMiddleware runs the replay loop on the session's terminal.
func (s *SSHServer) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.play(sshSession)
		next(sshSession)
	}
}

func (s *SSHServer) play(sshSession ssh.Session) {
	pty, winCh, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "bullscows needs a terminal, try: ssh -t")
		return
	}

	out := &syncWriter{w: sshSession}
	status := &ANSIStatus{Out: out, Width: pty.Window.Width}

	renderer := lipgloss.NewRenderer(sshSession)
	if pty.Term != "" && pty.Term != "dumb" {
		renderer.SetColorProfile(termenv.ANSI256)
	}

	ctx := sshSession.Context()
	go func() {
		for {
			select {
			case win, open := <-winCh:
				if !open {
					return
				}
				status.SetWidth(win.Width)
			case <-ctx.Done():
				return
			}
		}
	}()

	console := NewConsole(NewLineEditor(sshSession, out), out, ConsoleConfig{
		Status:         status,
		Renderer:       renderer,
		RedrawInterval: s.config.RedrawInterval,
		PollInterval:   s.config.PollInterval,
		MaxAttempts:    s.config.MaxAttempts,
		MaxTimeToGuess: s.config.MaxTimeToGuess,
		Logger:         s.logger,
	})
	defer console.Close()

	err := Run(ctx, console, RunConfig{
		Defaults: s.config.Defaults,
		Seed:     s.sessionSeed(),
		Player:   sshSession.User(),
		Logger:   s.logger,
	})
	if err != nil {
		s.logger.Error("session failed", "user", sshSession.User(), "error", err)
		wish.Errorln(sshSession, "session failed:", err)
	}
}

// sessionSeed returns the seed for the next connection.
func (s *SSHServer) sessionSeed() int64 {
	n := s.sessions.Add(1) - 1
	if s.config.Seed == 0 {
		return 0
	}
	return s.config.Seed + n
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or the
// listener fails, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
