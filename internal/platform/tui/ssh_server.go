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

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
	"github.com/vovakirdan/neometro/internal/games/runner"
	"github.com/vovakirdan/neometro/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.neometro/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// ConfigPath is an optional runner YAML shared by every session.
	ConfigPath string

	// MetricsAddress serves Prometheus metrics when set (e.g., ":9100").
	MetricsAddress string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of each session.
	TickRate int

	// Logger receives server logs. Defaults to stderr with timestamps.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.neometro/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for the game.
type SSHServer struct {
	config  SSHServerConfig
	runner  config.RunnerConfig
	server  *ssh.Server
	store   *storage.Store
	metrics *MetricsServer
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "neometro-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	runnerCfg, source, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := runnerCfg.Validate(); err != nil {
		return nil, err
	}
	logger.Info("runner config loaded", "source", source)

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		runner: runnerCfg,
		store:  store,
		logger: logger,
	}
	if cfg.MetricsAddress != "" {
		srv.metrics = NewMetricsServer(cfg.MetricsAddress, logger)
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".neometro", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
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

	model := NewSessionModel(SessionDeps{
		Store:   s.store,
		Runner:  s.runner,
		Metrics: s.Metrics(),
		Logger:  s.logger.With("user", sshSession.User()),
	}, cfg, sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		s.Metrics().SessionStarted()
		next(sshSession)
		s.Metrics().SessionEnded()
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// Metrics returns the game metrics, nil when metrics are disabled.
func (s *SSHServer) Metrics() *Metrics {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.Metrics()
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	if s.metrics != nil {
		if err := s.metrics.Start(); err != nil {
			return fmt.Errorf("cannot start metrics server: %w", err)
		}
	}

	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := s.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.metrics != nil {
		if err := s.metrics.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Sessions hand the store's scoped prefs straight to the runner.
var _ runner.Prefs = (*storage.Prefs)(nil)

// SessionDeps are the shared objects every SSH session uses.
type SessionDeps struct {
	Store   *storage.Store // nil runs without history, prefs live in memory
	Runner  config.RunnerConfig
	Metrics *Metrics
	Logger  *log.Logger
}

// SessionModel manages one SSH player's flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps       SessionDeps
	config     core.RuntimeConfig
	username   string
	prefs      runner.Prefs
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig, username string) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	var prefs runner.Prefs = runner.NewMemoryPrefs()
	if deps.Store != nil {
		prefs = deps.Store.Prefs(username)
	}

	m := SessionModel{
		deps:     deps,
		config:   cfg,
		username: username,
		prefs:    prefs,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	high, err := m.prefs.Int(runner.KeyHighScore)
	if err != nil {
		m.deps.Logger.Warn("could not read high score", "error", err)
	}
	return NewMenuModel(m.config, m.username, high)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case ChoicePlay:
		return m.startGame(selected.Preset)

	case ChoiceScores:
		sb := NewScoreboardModel(m.deps.Store, m.username, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.menu.ClearSelection("")
		return m, sb.Init()

	case ChoiceResetStory:
		status := "The story will be told again on your next run."
		if err := runner.ResetStory(m.prefs); err != nil {
			m.deps.Logger.Warn("could not reset story", "error", err)
			status = "Could not reset the story."
		}
		m.menu.ClearSelection(status)
	}

	return m, cmd
}

// startGame creates a fresh game for the chosen difficulty.
func (m SessionModel) startGame(preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	cfg := m.deps.Runner
	game, err := runner.New(runner.Options{
		Config: &cfg,
		Preset: preset,
		Prefs:  m.prefs,
		Logger: m.deps.Logger,
	})
	if err != nil {
		m.deps.Logger.Error("could not create game", "error", err)
		m.menu.ClearSelection("Could not start the game.")
		return m, nil
	}

	m.config = m.menu.Config()
	gm := NewModel(game, m.deps.Store, m.config, ModelOptions{
		Player:         m.username,
		SwipeThreshold: cfg.Input.SwipeThresholdCells,
		Metrics:        m.deps.Metrics,
		Logger:         m.deps.Logger,
		AllowBack:      true,
	})
	m.gameModel = &gm
	m.deps.Logger.Info("game started", "difficulty", preset)
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScoreboard handles updates while the run history is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}
	// Leaving the scoreboard returns to the menu, it never ends the session.
	if m.scoreboard.quitting {
		m.scoreboard = nil
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.gameModel != nil
}

// Prefs returns the player's preference store.
func (m SessionModel) Prefs() runner.Prefs {
	return m.prefs
}

// RunSession runs the menu session on the local terminal. Prefs use the
// local scope.
func RunSession(deps SessionDeps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg, ""),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
