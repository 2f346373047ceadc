package runner

import (
	"math/rand"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
)

// Phase is the session state.
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseStumbling
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseStumbling:
		return "stumbling"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Frame is the input for one session tick.
type Frame struct {
	Dt    float64
	Input core.InputFrame
}

// RunResult summarises a finished run.
type RunResult struct {
	Score    int
	High     int
	Improved bool
	Distance float64 // meters
	Duration float64 // seconds of running, pauses excluded
}

// Session drives one player's game: the intro, runs, stumbles, game-over
// sequences and restarts. All components are wired once here and updated in
// order from Tick.
type Session struct {
	cfg config.RunnerConfig
	env Env
	rng *rand.Rand

	player  *Player
	tiles   *TileStreamer
	pool    *ObstaclePool
	spawner *Spawner
	scorer  *Scorer
	music   *Music
	intro   *Intro

	phase    Phase
	paused   bool
	delay    Timer
	start    Vec3
	runTime  float64
	runs     int
	runEnded bool
	result   RunResult
}

// SessionOptions tweak session construction.
type SessionOptions struct {
	// SkipIntro starts playing immediately. The play count is still recorded.
	SkipIntro bool
}

// NewSession wires a session. rng is the only randomness source and is
// never reseeded, so restarts continue the same sequence.
func NewSession(cfg config.RunnerConfig, env Env, rng *rand.Rand, opts SessionOptions) *Session {
	env = env.withDefaults()
	s := &Session{cfg: cfg, env: env, rng: rng}

	s.player = NewPlayer(cfg.Player, config.NewSpeedRamp(cfg.Speed))
	s.tiles = NewTileStreamer(cfg.World.TileCount, cfg.World.TileLength, s.start.Z)
	s.pool = NewObstaclePool(cfg.Obstacles.PoolInitial, cfg.Obstacles.PoolMax)
	s.spawner = NewSpawner(s.pool, rng, cfg.Obstacles, cfg.Player.LaneDistance)
	s.spawner.OnSpawn = func(o *Obstacle) {
		env.Log.Debug("obstacle spawned", "id", o.ID, "lane", o.Lane, "z", o.Pos.Z)
	}
	s.scorer = NewScorer(cfg.Score, env.Prefs, env.Log)
	s.music = NewMusic(env.Audio, cfg.Session.MusicVolume)

	if cfg.Story.Enabled && !opts.SkipIntro {
		story, first := SelectStory(env.Prefs, rng, env.Log)
		env.Log.Debug("intro selected", "first_time", first, "panels", len(story))
		s.intro = NewIntro(story, cfg.Story.TypingInterval, env.Audio, cfg.Story.TypingVolume)
	} else {
		RecordPlay(env.Prefs, env.Log)
	}

	s.resetWorld()
	s.music.Play()

	if s.intro != nil && !s.intro.Done() {
		s.phase = PhaseIntro
		env.UI.HideHUD()
	} else {
		s.begin()
	}
	return s
}

func (s *Session) resetWorld() {
	s.player.Reset(s.start)
	s.tiles.Reset(s.start.Z)
	s.pool.ReleaseAll()
	s.spawner.Start(s.start.Z)
	s.scorer.Reset(s.start.Z)
	s.delay.Cancel()
	s.runTime = 0
	s.paused = false
}

func (s *Session) begin() {
	s.phase = PhasePlaying
	s.runs++
	s.env.UI.ShowHUD()
	s.env.UI.UpdateScore(s.scorer.Current())
}

// Tick advances the session by one frame. It reports true on the tick a run
// ends and the game-over panel appears.
func (s *Session) Tick(f Frame) bool {
	s.runEnded = false
	in := f.Input

	if in.Has(core.ActionRestart) && (s.phase == PhaseStumbling || s.phase == PhaseGameOver) {
		s.Restart()
		return false
	}

	switch s.phase {
	case PhaseIntro:
		s.intro.Update(f.Dt)
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			if s.intro.Click() {
				s.begin()
			}
		}
	case PhasePlaying:
		if in.Has(core.ActionPause) {
			s.paused = !s.paused
		}
		if s.paused {
			return false
		}
		s.runTime += f.Dt
		s.stepWorld(f.Dt, in)
	case PhaseStumbling:
		s.stepWorld(f.Dt, in)
		if s.delay.Advance(f.Dt) {
			s.finishRun()
		}
	}

	s.music.Update(f.Dt)
	return s.runEnded
}

// stepWorld runs the world components in dependency order: movement, then
// streaming and spawning against the new reference point, then scoring.
func (s *Session) stepWorld(dt float64, in core.InputFrame) {
	mv := s.player.Update(dt, in)
	if mv.Jumped {
		s.env.Audio.PlayOneShot(ClipJump, s.cfg.Audio.JumpVolume)
	}

	ref := s.player.Position().Z
	if n := s.tiles.Advance(ref); n > 1 {
		s.env.Log.Debug("recycled several tiles in one tick", "count", n, "z", ref)
	}
	s.spawner.Despawn(ref)
	s.spawner.EnsureSpawned(ref, s.cfg.Obstacles.SpawnAhead)

	if s.phase == PhasePlaying {
		if hit := s.spawner.Collide(s.player.Bounds()); hit != nil {
			s.env.Log.Debug("collision", "obstacle", hit.ID, "lane", hit.Lane, "z", ref)
			s.TriggerGameOver()
		}
	}

	s.env.UI.UpdateScore(s.scorer.Update(ref))
}

// TriggerGameOver starts the stumble and the timed game-over sequence. It
// does nothing unless a run is in progress, so repeated calls are harmless.
func (s *Session) TriggerGameOver() bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.phase = PhaseStumbling
	s.paused = false
	s.player.Stumble()
	s.env.Audio.PlayOneShot(ClipGameOver, s.cfg.Audio.GameOverVolume)
	s.music.FadeOut(s.cfg.Session.FadeDuration)
	s.delay.Start(s.cfg.Session.GameOverDelay)
	if s.cfg.Session.GameOverDelay <= 0 {
		s.finishRun()
	}
	return true
}

func (s *Session) finishRun() {
	final, high, improved := s.scorer.Stop()
	s.phase = PhaseGameOver
	s.result = RunResult{
		Score:    final,
		High:     high,
		Improved: improved,
		Distance: s.Distance(),
		Duration: s.runTime,
	}
	s.runEnded = true
	s.env.UI.HideHUD()
	s.env.UI.ShowGameOver(final, high)
	s.env.Log.Info("run finished", "score", final, "high", high, "distance", int(s.result.Distance))
}

// Restart abandons any game-over sequence in progress and starts a fresh run.
// Only valid once the player has stumbled.
func (s *Session) Restart() bool {
	if s.phase != PhaseStumbling && s.phase != PhaseGameOver {
		return false
	}
	s.resetWorld()
	s.music.Play()
	s.begin()
	return true
}

// Distance returns meters travelled in the current run.
func (s *Session) Distance() float64 {
	return s.player.Position().Z - s.start.Z
}

func (s *Session) Phase() Phase                { return s.phase }
func (s *Session) Paused() bool                { return s.paused }
func (s *Session) Runs() int                   { return s.runs }
func (s *Session) RunTime() float64            { return s.runTime }
func (s *Session) Result() RunResult           { return s.result }
func (s *Session) Player() *Player             { return s.player }
func (s *Session) Tiles() *TileStreamer        { return s.tiles }
func (s *Session) Pool() *ObstaclePool         { return s.pool }
func (s *Session) Spawner() *Spawner           { return s.spawner }
func (s *Session) Scorer() *Scorer             { return s.scorer }
func (s *Session) Music() *Music               { return s.music }
func (s *Session) Intro() *Intro               { return s.intro }
func (s *Session) Config() config.RunnerConfig { return s.cfg }
