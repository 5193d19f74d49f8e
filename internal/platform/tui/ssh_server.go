package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/blockdash/internal/config"
	"github.com/vovakirdan/blockdash/internal/core"
	"github.com/vovakirdan/blockdash/internal/games/dash"
	"github.com/vovakirdan/blockdash/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.blockdash/host_key.
	HostKeyPath string

	// DBPath is the path to the shared scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	TickRate int
	Game     config.DashConfig
	Logger   *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultDashConfig(),
	}
}

// SSHServer serves one Block Dash session per SSH connection. All sessions
// share the score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blockdash-ssh",
		})
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".blockdash", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	// Opened last so the early returns above hold nothing open
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.sessionMiddleware,
			logging.Middleware(),
		),
		// Input latency matters more than packet count
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game and its Bubble Tea program for each session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	// Cues stay silent: the sound would play on the server.
	var opts []dash.Option
	if s.store != nil {
		opts = append(opts, dash.WithBestKeeper(s.store.BestKeeper(dash.GameID)))
	}
	game := dash.NewGame(s.config.Game, opts...)

	model := NewModel(game, Options{
		Config:  s.config.Game,
		Store:   s.store,
		Runtime: rt,
		Logger:  s.logger.With("user", sess.User()),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionMiddleware logs who connected and for how long.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "err", err)
		if s.store != nil {
			s.store.Close()
		}
		return fmt.Errorf("tui: serve: %w", err)
	}
}

// Shutdown gracefully stops the server and closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
