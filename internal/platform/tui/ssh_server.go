package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the replay database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// LogLevel filters the server log written to stderr.
	LogLevel log.Level
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/replays.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		LogLevel:    log.InfoLevel,
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// The host key directory is prepared before the replay database is opened,
// so a failure there leaves nothing open.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-ssh",
		Level:           cfg.LogLevel,
	})

	hostKeyPath, err := prepareHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	// Sessions still work without replays
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
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
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// prepareHostKeyPath resolves the host key location, defaulting to
// ~/.arcade/host_key, and creates its directory.
func prepareHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.store, logger, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

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
		s.logger.Error("server error", "error", err)
		s.closeStore()
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenReplays
	screenWatch
)

// SessionModel manages the full arcade session flow inside one program:
// menu -> game -> menu, and menu -> replays -> playback -> replays.
// It is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     GameModel
	browser  ReplayBrowserModel
	watch    WatchModel
	quitting bool
}

// NewSessionModel creates a new session model starting at the menu.
// store and logger may be nil.
func NewSessionModel(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		logger: logger,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenReplays:
		return m.updateReplays(msg)
	case screenWatch:
		return m.updateWatch(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. Child models signal their
// result with tea.Quit, which the session swallows unless it really quits.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsReplays():
		m.browser = NewReplayBrowserModel(m.store, m.logger, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenReplays
		return m, m.browser.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.logger.Error("cannot create game", "error", err)
			m.menu = NewMenuModel(m.config)
			return m, nil
		}
		cfg := m.config
		cfg.Seed = 0
		m.game = NewGameModel(game, m.store, m.logger, cfg)
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		return m.toMenu()
	}

	return m, cmd
}

// updateReplays handles updates when browsing replays.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.browser.Update(msg)
	if browser, ok := newModel.(ReplayBrowserModel); ok {
		m.browser = browser
	}

	switch {
	case m.browser.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.browser.IsGoingBack():
		return m.toMenu()

	case m.browser.Selected() != 0:
		id := m.browser.Selected()
		m.browser = NewReplayBrowserModel(m.store, m.logger, m.config.ScreenW, m.config.ScreenH)

		rec, err := m.store.Replay(id)
		if err == nil {
			m.watch, err = NewWatchModel(rec, m.config.TickRate)
		}
		if err != nil {
			m.logger.Warn("cannot play replay", "id", id, "error", err)
			m.browser.status = fmt.Sprintf("Cannot play replay %d", id)
			return m, nil
		}
		m.screen = screenWatch
		return m, m.watch.Init()
	}

	return m, cmd
}

// updateWatch handles updates during replay playback.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.watch.Update(msg)
	if watch, ok := newModel.(WatchModel); ok {
		m.watch = watch
	}

	switch {
	case m.watch.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.watch.IsGoingBack():
		m.screen = screenReplays
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenReplays:
		return m.browser.View()
	case screenWatch:
		return m.watch.View()
	default:
		return m.menu.View()
	}
}
