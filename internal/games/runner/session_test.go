package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
)

func TestSessionIntroThenPlay(t *testing.T) {
	f := newFixture(t, false)

	require.Equal(t, PhaseIntro, f.s.Phase())
	assert.Equal(t, 1, f.ui.hides)
	assert.Zero(t, f.ui.shows)
	assert.Equal(t, 1, f.audio.plays, "music starts with the session")

	z := f.s.Player().Position().Z
	for i := 0; i < 100 && f.s.Phase() == PhaseIntro; i++ {
		f.tick(core.ActionConfirm)
		assert.Equal(t, z, f.s.Player().Position().Z, "the world is frozen during the intro")
	}

	assert.Equal(t, PhasePlaying, f.s.Phase())
	assert.Equal(t, 1, f.ui.shows)

	seen, _ := f.prefs.Int(KeyHasSeenStory)
	played, _ := f.prefs.Int(KeyTimesPlayed)
	assert.Equal(t, 1, seen)
	assert.Equal(t, 1, played)

	f.tick()
	assert.Greater(t, f.s.Player().Position().Z, z)
}

func TestSessionSkipIntroStillCountsPlay(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, PhasePlaying, f.s.Phase())
	assert.Nil(t, f.s.Intro())
	played, _ := f.prefs.Int(KeyTimesPlayed)
	seen, _ := f.prefs.Int(KeyHasSeenStory)
	assert.Equal(t, 1, played)
	assert.Zero(t, seen)
}

func TestSessionScoresWhilePlaying(t *testing.T) {
	f := newFixture(t, true)

	for range 120 {
		f.tick()
	}
	require.Equal(t, PhasePlaying, f.s.Phase(), "no obstacle within the first 20 meters")

	assert.InDelta(t, 20, f.s.Distance(), 1e-6)
	assert.Equal(t, Score(f.s.Distance(), 10, 0.8), f.s.Scorer().Current())
	require.NotEmpty(t, f.ui.scores)
	for i := 1; i < len(f.ui.scores); i++ {
		assert.GreaterOrEqual(t, f.ui.scores[i], f.ui.scores[i-1])
	}
}

func TestSessionCollisionEndsRun(t *testing.T) {
	f := newFixture(t, true)
	for range 30 {
		f.tick()
	}

	f.crash()
	require.Equal(t, PhaseStumbling, f.s.Phase())
	assert.True(t, f.s.Player().Stumbling())
	assert.Zero(t, f.s.Player().Speed())
	assert.Equal(t, 1, f.audio.count(ClipGameOver))
	assert.True(t, f.s.Music().Fading())
	assert.False(t, f.s.TriggerGameOver(), "game over is only triggered once")
	assert.Equal(t, 1, f.audio.count(ClipGameOver))

	ended := f.untilGameOver(t)
	assert.Equal(t, 1, ended, "the end of a run is reported exactly once")
	require.Equal(t, PhaseGameOver, f.s.Phase())

	res := f.s.Result()
	require.Len(t, f.ui.gameOvers, 1)
	assert.Equal(t, [2]int{res.Score, res.High}, f.ui.gameOvers[0])
	assert.Equal(t, f.s.Scorer().Current(), res.Score)
	assert.True(t, res.Improved)
	assert.InDelta(t, 31*testDt, res.Duration, 1e-9)

	high, _ := f.prefs.Int(KeyHighScore)
	assert.Equal(t, res.Score, high)

	assert.False(t, f.s.Music().Playing())
	assert.Zero(t, f.s.Music().Volume())
	assert.Equal(t, 1, f.audio.stops)
	for i := 1; i < len(f.audio.volumes); i++ {
		assert.LessOrEqual(t, f.audio.volumes[i], f.audio.volumes[i-1], "music fades out linearly")
	}
}

func TestSessionKeepsHigherStoredHighScore(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.prefs.SetInt(KeyHighScore, 1500))
	f.s = NewSession(f.s.Config(), Env{UI: f.ui, Audio: f.audio, Prefs: f.prefs}, f.s.rng, SessionOptions{SkipIntro: true})

	for range 30 {
		f.tick()
	}
	f.crash()
	f.untilGameOver(t)

	res := f.s.Result()
	assert.Less(t, res.Score, 1500)
	assert.Equal(t, 1500, res.High)
	assert.False(t, res.Improved)
	high, _ := f.prefs.Int(KeyHighScore)
	assert.Equal(t, 1500, high)
}

func TestSessionRestartAfterGameOver(t *testing.T) {
	f := newFixture(t, true)
	f.tick(core.ActionRight)
	for range 30 {
		f.tick()
	}
	require.Equal(t, 2, f.s.Player().Lane())

	f.crash()
	f.untilGameOver(t)
	require.Equal(t, PhaseGameOver, f.s.Phase())

	f.tick(core.ActionRestart)

	assert.Equal(t, PhasePlaying, f.s.Phase())
	assert.Equal(t, CenterLane, f.s.Player().Lane())
	assert.Equal(t, 10.0, f.s.Player().Speed())
	assert.Zero(t, f.s.Scorer().Current())
	assert.True(t, f.s.Scorer().Active())
	assert.Zero(t, f.s.Distance())
	assert.Equal(t, 2, f.s.Runs())

	start, end := f.s.Tiles().Span()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 250.0, end)
	assert.Equal(t, f.s.Config().Obstacles.InitialCount, f.s.Pool().ActiveCount())

	assert.True(t, f.s.Music().Playing())
	assert.Equal(t, 0.5, f.s.Music().Volume())
	assert.Equal(t, 2, f.audio.plays)
	assert.Equal(t, 2, f.ui.shows)
}

func TestSessionRestartDuringStumbleCancelsSequence(t *testing.T) {
	f := newFixture(t, true)
	require.True(t, f.s.TriggerGameOver())
	f.tick()
	require.Equal(t, PhaseStumbling, f.s.Phase())

	f.tick(core.ActionRestart)
	require.Equal(t, PhasePlaying, f.s.Phase())
	assert.False(t, f.s.Music().Fading())

	for range 100 {
		assert.False(t, f.tick())
	}
	assert.Equal(t, PhasePlaying, f.s.Phase())
	assert.Empty(t, f.ui.gameOvers)
}

func TestSessionRestartIgnoredWhilePlaying(t *testing.T) {
	f := newFixture(t, true)
	for range 10 {
		f.tick()
	}
	z := f.s.Player().Position().Z

	assert.False(t, f.s.Restart())
	f.tick(core.ActionRestart)
	assert.Greater(t, f.s.Player().Position().Z, z)
	assert.Equal(t, 1, f.s.Runs())
}

func TestSessionPause(t *testing.T) {
	f := newFixture(t, true)
	f.tick()

	f.tick(core.ActionPause)
	require.True(t, f.s.Paused())
	z := f.s.Player().Position().Z
	runTime := f.s.RunTime()
	assert.InDelta(t, testDt, runTime, 1e-12)
	for range 30 {
		f.tick()
	}
	assert.Equal(t, z, f.s.Player().Position().Z)
	assert.Equal(t, runTime, f.s.RunTime(), "paused time is not run time")

	f.tick(core.ActionPause)
	assert.False(t, f.s.Paused())
	f.tick()
	assert.Greater(t, f.s.Player().Position().Z, z)
	assert.InDelta(t, 3*testDt, f.s.RunTime(), 1e-12)
}

func TestSessionJumpSound(t *testing.T) {
	f := newFixture(t, true)
	f.tick(core.ActionJump)
	f.tick(core.ActionJump)

	assert.Equal(t, 1, f.audio.count(ClipJump))
}

func TestSessionZeroDelayEndsImmediately(t *testing.T) {
	f := newFixture(t, true, func(c *config.RunnerConfig) {
		c.Session.GameOverDelay = 0
		c.Session.FadeDuration = 0
	})

	f.s.TriggerGameOver()
	assert.Equal(t, PhaseGameOver, f.s.Phase())
	assert.Len(t, f.ui.gameOvers, 1)
	assert.False(t, f.s.Music().Playing())
}

func TestSessionWithoutCollaborators(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	s := NewSession(cfg, Env{}, newFixture(t, true).s.rng, SessionOptions{})

	assert.NotPanics(t, func() {
		for range 20 {
			s.Tick(Frame{Dt: testDt, Input: input(core.ActionConfirm)})
		}
		s.TriggerGameOver()
		for range 200 {
			s.Tick(Frame{Dt: testDt, Input: input()})
		}
	})
	assert.Equal(t, PhaseGameOver, s.Phase())
}
