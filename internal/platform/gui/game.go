// Package gui runs Neo-Metro in a window with Ebitengine: perspective
// vector graphics, keyboard, mouse and touch swipes, and synthesized audio.
package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/neometro/internal/core"
	"github.com/vovakirdan/neometro/internal/games/runner"
	"github.com/vovakirdan/neometro/internal/storage"
)

// Logical window size; Ebitengine scales it to the real window.
const (
	ScreenWidth  = 360
	ScreenHeight = 640
)

// Options configures the windowed frontend.
type Options struct {
	Runner   runner.Options // Audio and UI are filled in by New
	TickRate int
	Seed     int64
	Scale    float64 // window size multiplier
	Store    *storage.Store
	Logger   *log.Logger
	NoAudio  bool
}

// Window implements ebiten.Game around a runner.Game.
type Window struct {
	game    *runner.Game
	hud     *hud
	input   *inputReader
	frame   core.InputFrame
	proj    projection
	store   *storage.Store
	audio   *ToneAudio
	log     *log.Logger
	runtime core.RuntimeConfig
}

var _ ebiten.Game = (*Window)(nil)

// New creates the game and its window state. It does not open the window.
func New(opts Options) (*Window, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = ebiten.DefaultTPS
	}

	w := &Window{
		hud:   &hud{},
		frame: core.NewInputFrame(),
		proj:  newProjection(ScreenWidth, ScreenHeight),
		store: opts.Store,
		log:   logger,
		runtime: core.RuntimeConfig{
			ScreenW:  ScreenWidth,
			ScreenH:  ScreenHeight,
			TickRate: opts.TickRate,
			Seed:     opts.Seed,
		},
	}

	ropts := opts.Runner
	ropts.UI = w.hud
	ropts.Logger = logger
	if !opts.NoAudio {
		a, err := NewToneAudio(NewAudioContext(), logger)
		if err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			w.audio = a
			ropts.Audio = a
		}
	}

	game, err := runner.New(ropts)
	if err != nil {
		return nil, err
	}
	w.game = game
	w.input = newInputReader(game.Config().Input.SwipeThresholdPixels)
	w.game.Reset(w.runtime)
	return w, nil
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	w.frame.Clear()
	w.input.read(&w.frame)
	if w.frame.Has(core.ActionQuit) {
		return ebiten.Termination
	}
	// A tap on the game-over panel restarts, like R.
	if w.game.State().GameOver && w.frame.Has(core.ActionConfirm) {
		w.frame.Set(core.ActionRestart)
	}

	if res := w.game.Step(w.frame); res.RunEnded {
		w.recordRun()
	}
	return nil
}

// recordRun stores a finished run. Failures are logged and never stop play.
func (w *Window) recordRun() {
	if w.store == nil {
		return
	}
	last := w.game.LastRun()
	rec, err := w.store.SaveRun(storage.RunRecord{
		Score:    last.Score,
		Distance: last.Distance,
		Duration: last.Duration,
		Seed:     w.game.Seed(),
	})
	if err != nil {
		w.log.Warn("could not save run", "error", err)
		return
	}
	w.log.Debug("run saved", "id", rec.ID, "score", rec.Score)
}

// Draw renders the current frame.
func (w *Window) Draw(screen *ebiten.Image) {
	s := w.game.Session()
	if s == nil {
		return
	}

	drawWorld(screen, w.proj, s)
	if w.hud.visible {
		drawHUD(screen, w.proj, w.hud, s)
	}

	switch {
	case s.Phase() == runner.PhaseIntro:
		panel, total := s.Intro().Panel()
		drawPanel(screen, w.proj, fmt.Sprintf("%d/%d", panel+1, total), introLines(s.Intro(), w.proj.width))
	case w.hud.gameOver:
		drawPanel(screen, w.proj, "GAME OVER", gameOverLines(w.hud.final, w.hud.high, s.Result().Improved))
	case s.Paused():
		drawPanel(screen, w.proj, "PAUSED", []panelLine{{"Press P to resume", core.ColorGray}})
	}
}

// Layout keeps a fixed logical resolution.
func (w *Window) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Game returns the running game.
func (w *Window) Game() *runner.Game {
	return w.game
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(opts Options) error {
	w, err := New(opts)
	if err != nil {
		return err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(ScreenWidth*scale), int(ScreenHeight*scale))
	ebiten.SetWindowTitle(runner.GameTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.runtime.TickRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

// hud collects UI notifications for drawing.
type hud struct {
	score    int
	visible  bool
	gameOver bool
	final    int
	high     int
}

var _ runner.UI = (*hud)(nil)

func (h *hud) UpdateScore(score int) { h.score = score }
func (h *hud) ShowHUD()              { h.visible, h.gameOver = true, false }
func (h *hud) HideHUD()              { h.visible = false }

func (h *hud) ShowGameOver(final, high int) {
	h.gameOver = true
	h.final, h.high = final, high
}
