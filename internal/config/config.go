// Package config provides YAML-based tuning for the runner and the speed
// progression that difficulty presets act on.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tuning for the runner.
// Distances are meters, times are seconds, speeds are meters per second.
type RunnerConfig struct {
	World     WorldConfig    `yaml:"world"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Player    PlayerConfig   `yaml:"player"`
	Speed     SpeedConfig    `yaml:"speed"`
	Score     ScoreConfig    `yaml:"score"`
	Session   SessionConfig  `yaml:"session"`
	Story     StoryConfig    `yaml:"story"`
	Audio     AudioConfig    `yaml:"audio"`
	Input     InputConfig    `yaml:"input"`
	View      ViewConfig     `yaml:"view"`
}

// WorldConfig sizes the ring of streamed tiles.
type WorldConfig struct {
	TileCount  int     `yaml:"tile_count"`
	TileLength float64 `yaml:"tile_length"`
}

// ObstacleConfig controls pooling and spawn scheduling.
type ObstacleConfig struct {
	PoolInitial   int     `yaml:"pool_initial"`   // instances created up front
	PoolMax       int     `yaml:"pool_max"`       // hard cap, 0 means unbounded
	SpawnAhead    float64 `yaml:"spawn_ahead"`    // keep obstacles scheduled this far ahead
	MinSpacing    float64 `yaml:"min_spacing"`
	MaxSpacing    float64 `yaml:"max_spacing"`
	FirstOffset   float64 `yaml:"first_offset"`   // distance to the first obstacle of a run
	InitialCount  int     `yaml:"initial_count"`  // obstacles placed when a run starts
	DespawnOffset float64 `yaml:"despawn_offset"` // release once this far behind (negative)
	Width         float64 `yaml:"width"`
	Length        float64 `yaml:"length"`
	Height        float64 `yaml:"height"`
}

// PlayerConfig defines lane movement, jumping and the collision box.
type PlayerConfig struct {
	LaneDistance    float64 `yaml:"lane_distance"`
	LaneChangeSpeed float64 `yaml:"lane_change_speed"`
	JumpForce       float64 `yaml:"jump_force"`
	Gravity         float64 `yaml:"gravity"`
	GroundedBias    float64 `yaml:"grounded_bias"`
	Width           float64 `yaml:"width"`
	Length          float64 `yaml:"length"`
	Height          float64 `yaml:"height"`
}

// SpeedConfig defines the forward speed ramp.
type SpeedConfig struct {
	Base          float64 `yaml:"base"`
	IncreaseRate  float64 `yaml:"increase_rate"`  // m/s gained per second once ramping
	IncreaseDelay float64 `yaml:"increase_delay"` // warm-up before ramping starts
	Max           float64 `yaml:"max"`
}

// ScoreConfig parameterises the distance score curve.
type ScoreConfig struct {
	PointsPerMeter int     `yaml:"points_per_meter"`
	DifficultyRamp float64 `yaml:"difficulty_ramp"`
}

// SessionConfig times the game-over sequence.
type SessionConfig struct {
	GameOverDelay float64 `yaml:"game_over_delay"`
	FadeDuration  float64 `yaml:"fade_duration"`
	MusicVolume   float64 `yaml:"music_volume"`
}

// StoryConfig controls the intro typewriter.
type StoryConfig struct {
	Enabled        bool    `yaml:"enabled"`
	TypingInterval float64 `yaml:"typing_interval"`
	TypingVolume   float64 `yaml:"typing_volume"`
}

// AudioConfig sets one-shot volumes.
type AudioConfig struct {
	JumpVolume     float64 `yaml:"jump_volume"`
	GameOverVolume float64 `yaml:"game_over_volume"`
}

// InputConfig sets swipe thresholds per frontend.
type InputConfig struct {
	SwipeThresholdCells  float64 `yaml:"swipe_threshold_cells"`
	SwipeThresholdPixels float64 `yaml:"swipe_threshold_pixels"`
}

// ViewConfig controls the terminal projection.
type ViewConfig struct {
	VisibleAhead  float64 `yaml:"visible_ahead"`  // meters shown above the player
	VisibleBehind float64 `yaml:"visible_behind"` // meters shown below the player
}

// Validate checks the invariants the game relies on.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.TileCount > 0, "world.tile_count must be positive, got %d", c.World.TileCount)
	check(c.World.TileLength > 0, "world.tile_length must be positive, got %g", c.World.TileLength)

	o := c.Obstacles
	check(o.PoolInitial >= 0, "obstacles.pool_initial must not be negative")
	check(o.PoolMax == 0 || o.PoolMax >= o.PoolInitial,
		"obstacles.pool_max (%d) must be 0 or at least pool_initial (%d)", o.PoolMax, o.PoolInitial)
	check(o.MinSpacing > 0, "obstacles.min_spacing must be positive, got %g", o.MinSpacing)
	check(o.MaxSpacing >= o.MinSpacing,
		"obstacles.max_spacing (%g) must be >= min_spacing (%g)", o.MaxSpacing, o.MinSpacing)
	check(o.DespawnOffset <= 0, "obstacles.despawn_offset must not be positive, got %g", o.DespawnOffset)

	p := c.Player
	check(p.LaneDistance > 0, "player.lane_distance must be positive")
	check(p.LaneChangeSpeed > 0, "player.lane_change_speed must be positive")
	check(p.Gravity < 0, "player.gravity must be negative, got %g", p.Gravity)

	s := c.Speed
	check(s.Base >= 0, "speed.base must not be negative")
	check(s.Max >= s.Base, "speed.max (%g) must be >= speed.base (%g)", s.Max, s.Base)
	check(s.IncreaseRate >= 0, "speed.increase_rate must not be negative")

	// Within these bounds the score curve is non-decreasing in distance.
	check(c.Score.PointsPerMeter >= 0, "score.points_per_meter must not be negative")
	check(c.Score.DifficultyRamp >= 0 && c.Score.DifficultyRamp <= 1,
		"score.difficulty_ramp must be within [0, 1], got %g", c.Score.DifficultyRamp)

	check(c.Session.GameOverDelay >= 0, "session.game_over_delay must not be negative")
	check(c.Session.FadeDuration >= 0, "session.fade_duration must not be negative")
	check(c.Session.MusicVolume >= 0 && c.Session.MusicVolume <= 1, "session.music_volume must be within [0, 1]")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. The empty string keeps the
// config's own speed settings.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
