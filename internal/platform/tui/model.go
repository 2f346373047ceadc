package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neometro/internal/core"
	"github.com/vovakirdan/neometro/internal/games/runner"
	"github.com/vovakirdan/neometro/internal/storage"
)

// DefaultSwipeThreshold is the drag length in cells that counts as a swipe.
const DefaultSwipeThreshold = 4

// runReporter is implemented by games that can describe their last run.
type runReporter interface {
	LastRun() runner.RunResult
	Seed() int64
}

// ModelOptions carries the optional collaborators of a Model.
type ModelOptions struct {
	Player         string // recorded with every run, empty for local play
	SwipeThreshold float64
	Metrics        *Metrics
	Logger         *log.Logger
	AllowBack      bool // B leaves a paused or finished game
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       core.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string
	metrics    *Metrics
	log        *log.Logger
	allowBack  bool
	quitting   bool
	backToMenu bool
	lastSaved  *storage.RunRecord
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.SwipeThreshold <= 0 {
		opts.SwipeThreshold = DefaultSwipeThreshold
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(opts.SwipeThreshold),
		inputFrame: core.NewInputFrame(),
		player:     opts.Player,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		allowBack:  opts.AllowBack,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that can follow a resize keep their run; others start over.
	if r, ok := m.game.(core.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.RunEnded {
		m.recordRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores a finished run. Failures are logged and never stop play.
func (m *Model) recordRun() {
	rec := storage.RunRecord{
		Player: m.player,
		Score:  m.gameState.Score,
	}
	if rr, ok := m.game.(runReporter); ok {
		last := rr.LastRun()
		rec.Score = last.Score
		rec.Distance = last.Distance
		rec.Duration = last.Duration
		rec.Seed = rr.Seed()
	} else {
		rec.Distance = m.gameState.Distance
	}
	m.metrics.RunFinished(rec.Score, rec.Distance)

	if m.store == nil {
		return
	}
	saved, err := m.store.SaveRun(rec)
	if err != nil {
		m.metrics.SaveFailed()
		m.log.Warn("could not save run", "player", m.player, "error", err)
		return
	}
	m.lastSaved = &saved
	m.log.Debug("run saved", "id", saved.ID, "player", saved.Player, "score", saved.Score)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// LastSaved returns the most recently stored run, nil if none.
func (m Model) LastSaved() *storage.RunRecord {
	return m.lastSaved
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".neometro", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("could not save screenshot", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game core.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // drags become swipes
	)

	_, err := p.Run()
	return err
}
