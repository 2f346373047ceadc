// Package runner implements Neo-Metro, an endless three-lane runner.
//
// The world is streamed as a ring of tiles around the player, obstacles are
// pooled and spawned ahead, and the score grows with distance under a
// diminishing-returns curve. A Session wires these components together; Game
// adapts a Session to the fixed-tick frontend contract.
package runner

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
)

const (
	GameID    = "runner"
	GameTitle = "Neo-Metro Runner"
)

// Options configures a Game.
type Options struct {
	ConfigPath string                  // custom YAML, empty for the search path
	Preset     config.DifficultyPreset // applied on top of the loaded config
	Config     *config.RunnerConfig    // used as is when set, skipping the loader

	Prefs  Prefs
	Audio  Audio
	UI     UI // notified in addition to the built-in HUD
	Logger *log.Logger

	SkipIntro bool
}

// Game implements core.Game for the runner.
type Game struct {
	opts    Options
	cfg     config.RunnerConfig
	source  string
	runtime core.RuntimeConfig
	rng     *rand.Rand
	seed    int64
	session *Session
	hud     *hud
	log     *log.Logger
}

var _ core.Game = (*Game)(nil)

// New loads the configuration and creates a game. The session itself is
// created by Reset.
func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var (
		cfg    config.RunnerConfig
		source = "options"
	)
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		var err error
		cfg, source, err = config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("runner: %w", err)
		}
	}
	if opts.Preset != "" {
		config.ApplyPreset(&cfg, opts.Preset)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	logger.Debug("config loaded", "source", source, "preset", opts.Preset)

	return &Game{
		opts:   opts,
		cfg:    cfg,
		source: source,
		hud:    &hud{next: opts.UI},
		log:    logger,
	}, nil
}

func (g *Game) ID() string    { return GameID }
func (g *Game) Title() string { return GameTitle }

// Reset starts a new session, intro included. The RNG is created on the
// first call only; later resets keep drawing from it.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.rng == nil {
		g.seed = runtime.Seed
		if g.seed == 0 {
			g.seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	*g.hud = hud{next: g.opts.UI}
	g.session = NewSession(g.cfg, Env{
		UI:    g.hud,
		Audio: g.opts.Audio,
		Prefs: g.opts.Prefs,
		Log:   g.log,
	}, g.rng, SessionOptions{SkipIntro: g.opts.SkipIntro})
}

// Resize follows a change of the terminal size.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
}

// Step advances the session by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}
	ended := g.session.Tick(Frame{Dt: g.runtime.Dt(), Input: in})
	return core.StepResult{State: g.State(), RunEnded: ended}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	s := g.session
	return core.GameState{
		Score:     s.Scorer().Current(),
		HighScore: s.Scorer().High(),
		Distance:  s.Distance(),
		Phase:     s.Phase().String(),
		GameOver:  s.Phase() == PhaseGameOver,
		Paused:    s.Paused(),
	}
}

// Session returns the running session, nil before the first Reset.
func (g *Game) Session() *Session { return g.session }

// Config returns the effective configuration.
func (g *Game) Config() config.RunnerConfig { return g.cfg }

// ConfigSource names where the configuration was loaded from.
func (g *Game) ConfigSource() string { return g.source }

// Seed returns the seed the RNG was created with.
func (g *Game) Seed() int64 { return g.seed }

// LastRun returns the result of the most recently finished run.
func (g *Game) LastRun() RunResult {
	if g.session == nil {
		return RunResult{}
	}
	return g.session.Result()
}

// hud is the built-in UI: it keeps what the renderer needs and forwards every
// notification to an optional external listener.
type hud struct {
	score    int
	visible  bool
	gameOver bool
	final    int
	high     int
	next     UI
}

func (h *hud) UpdateScore(score int) {
	h.score = score
	if h.next != nil {
		h.next.UpdateScore(score)
	}
}

func (h *hud) ShowGameOver(final, high int) {
	h.gameOver = true
	h.final, h.high = final, high
	if h.next != nil {
		h.next.ShowGameOver(final, high)
	}
}

func (h *hud) ShowHUD() {
	h.visible = true
	h.gameOver = false
	if h.next != nil {
		h.next.ShowHUD()
	}
}

func (h *hud) HideHUD() {
	h.visible = false
	if h.next != nil {
		h.next.HideHUD()
	}
}
