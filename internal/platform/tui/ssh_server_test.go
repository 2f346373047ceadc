package tui

import (
	"io"
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/games/runner"
)

func newSession(t *testing.T, deps SessionDeps) SessionModel {
	t.Helper()
	if deps.Runner.World.TileCount == 0 {
		deps.Runner = config.DefaultRunnerConfig()
		deps.Runner.Story.Enabled = false
	}
	return NewSessionModel(deps, testRuntime, "alice")
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		require.True(t, ok)
		m = sm
	}
	return m
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newSession(t, SessionDeps{})
	assert.Contains(t, m.View(), "N E O - M E T R O")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.InGame())

	m = send(t, m, TickMsg{}, runeKey('p'), TickMsg{}, runeKey('b'))
	assert.False(t, m.InGame())
	assert.Contains(t, m.View(), "Welcome back, alice")

	played, err := m.Prefs().Int(runner.KeyTimesPlayed)
	require.NoError(t, err)
	assert.Equal(t, 1, played)
}

func TestSessionResetStory(t *testing.T) {
	m := newSession(t, SessionDeps{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, TickMsg{}, runeKey('p'), TickMsg{}, runeKey('b'))
	require.NoError(t, m.Prefs().SetInt(runner.KeyHasSeenStory, 1))

	// Replay the story is the fifth entry.
	for range 4 {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.InGame())
	assert.Contains(t, m.View(), "The story will be told again")
	seen, _ := m.Prefs().Int(runner.KeyHasSeenStory)
	played, _ := m.Prefs().Int(runner.KeyTimesPlayed)
	assert.Zero(t, seen)
	assert.Zero(t, played)
}

func TestSessionScoreboardReturnsToMenu(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	m := newSession(t, SessionDeps{Store: store})
	for range 3 {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "TOP RUNS (alice)")

	m = send(t, m, TickMsg{}, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Contains(t, m.View(), "N E O - M E T R O")
}

func TestSessionPrefsScopedPerUser(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.Prefs("bob").SetInt(runner.KeyHighScore, 900))

	m := newSession(t, SessionDeps{Store: store})
	assert.Contains(t, m.View(), "High score: 0")

	require.NoError(t, store.Prefs("alice").SetInt(runner.KeyHighScore, 361))
	m = newSession(t, SessionDeps{Store: store})
	assert.Contains(t, m.View(), "High score: 361")
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := newSession(t, SessionDeps{})
	next, cmd := m.Update(runeKey('q'))
	assert.NotNil(t, cmd)
	assert.Empty(t, next.(SessionModel).View())
}

func TestStorePrefsDriveTheStory(t *testing.T) {
	store := openStore(t)
	var prefs runner.Prefs = store.Prefs("alice")
	rng := rand.New(rand.NewSource(1))

	_, first := runner.SelectStory(prefs, rng, log.New(io.Discard))
	assert.True(t, first)
	_, first = runner.SelectStory(prefs, rng, log.New(io.Discard))
	assert.False(t, first)

	played, err := store.Prefs("alice").Int(runner.KeyTimesPlayed)
	require.NoError(t, err)
	assert.Equal(t, 2, played)

	require.NoError(t, runner.ResetStory(prefs))
	seen, err := store.Prefs("alice").Int(runner.KeyHasSeenStory)
	require.NoError(t, err)
	assert.Zero(t, seen)
}
