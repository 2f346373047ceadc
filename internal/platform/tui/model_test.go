package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
	"github.com/vovakirdan/neometro/internal/games/runner"
	"github.com/vovakirdan/neometro/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newRunnerGame(t *testing.T) *runner.Game {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	g, err := runner.New(runner.Options{Config: &cfg, Prefs: runner.NewMemoryPrefs(), SkipIntro: true})
	require.NoError(t, err)
	return g
}

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestModelRecordsFinishedRun(t *testing.T) {
	store := openStore(t)
	metrics := NewMetrics(prometheus.NewRegistry())
	game := newRunnerGame(t)

	m := NewModel(game, store, testRuntime, ModelOptions{Player: "alice", Metrics: metrics})
	m.Init()

	for range 30 {
		m = update(t, m, TickMsg{})
	}
	game.Session().TriggerGameOver()
	for range 200 {
		m = update(t, m, TickMsg{})
	}

	require.True(t, m.State().GameOver)
	saved := m.LastSaved()
	require.NotNil(t, saved)
	assert.Equal(t, "alice", saved.Player)
	assert.Equal(t, int64(7), saved.Seed)
	assert.Equal(t, game.LastRun().Score, saved.Score)
	assert.InDelta(t, game.LastRun().Distance, saved.Distance, 1e-9)
	assert.Positive(t, saved.Duration)

	runs, err := store.TopRuns("alice", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1, "a run is stored exactly once")
	assert.Equal(t, saved.ID, runs[0].ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RunsTotal))
}

func TestModelWithoutStore(t *testing.T) {
	game := newRunnerGame(t)
	m := NewModel(game, nil, testRuntime, ModelOptions{})
	m.Init()

	game.Session().TriggerGameOver()
	for range 200 {
		m = update(t, m, TickMsg{})
	}
	assert.True(t, m.State().GameOver)
	assert.Nil(t, m.LastSaved())
}

func TestModelKeysReachTheGame(t *testing.T) {
	game := newRunnerGame(t)
	m := NewModel(game, nil, testRuntime, ModelOptions{})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg{})
	assert.Equal(t, 0, game.Session().Player().Lane())

	m = update(t, m, runeKey('p'))
	m = update(t, m, TickMsg{})
	assert.True(t, m.State().Paused)
}

func TestModelSwipeReachesTheGame(t *testing.T) {
	game := newRunnerGame(t)
	m := NewModel(game, nil, testRuntime, ModelOptions{})
	m.Init()

	m = update(t, m, mouse(tea.MouseActionPress, 40, 12))
	m = update(t, m, mouse(tea.MouseActionRelease, 50, 12))
	update(t, m, TickMsg{})
	assert.Equal(t, 2, game.Session().Player().Lane())
}

func TestModelQuit(t *testing.T) {
	m := NewModel(newRunnerGame(t), nil, testRuntime, ModelOptions{})
	m.Init()

	next, cmd := m.Update(runeKey('q'))
	assert.NotNil(t, cmd)
	assert.True(t, next.(Model).IsQuitting())
	assert.Empty(t, next.(Model).View())
}

func TestModelBackOnlyWhenAllowed(t *testing.T) {
	for _, allow := range []bool{false, true} {
		game := newRunnerGame(t)
		m := NewModel(game, nil, testRuntime, ModelOptions{AllowBack: allow})
		m.Init()

		m = update(t, m, runeKey('b'))
		assert.False(t, m.BackToMenu(), "never while running")

		m = update(t, m, runeKey('p'))
		m = update(t, m, TickMsg{})
		m = update(t, m, runeKey('b'))
		assert.Equal(t, allow, m.BackToMenu())
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := newRunnerGame(t)
	m := NewModel(game, nil, testRuntime, ModelOptions{})
	m.Init()

	for range 30 {
		m = update(t, m, TickMsg{})
	}
	before := game.Session()
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Same(t, before, game.Session())
	view := m.View()
	assert.Contains(t, view, "Score:")
}
