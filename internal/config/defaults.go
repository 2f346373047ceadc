package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			TileCount:  5,
			TileLength: 50,
		},
		Obstacles: ObstacleConfig{
			PoolInitial:   15,
			PoolMax:       64,
			SpawnAhead:    100,
			MinSpacing:    15,
			MaxSpacing:    25,
			FirstOffset:   30,
			InitialCount:  5,
			DespawnOffset: -10,
			Width:         2.0,
			Length:        1.5,
			Height:        1.0,
		},
		Player: PlayerConfig{
			LaneDistance:    5,
			LaneChangeSpeed: 8,
			JumpForce:       8,
			Gravity:         -20,
			GroundedBias:    -2,
			Width:           1.0,
			Length:          1.0,
			Height:          1.8,
		},
		Speed: SpeedConfig{
			Base:          10,
			IncreaseRate:  0.1,
			IncreaseDelay: 5,
			Max:           25,
		},
		Score: ScoreConfig{
			PointsPerMeter: 10,
			DifficultyRamp: 0.8,
		},
		Session: SessionConfig{
			GameOverDelay: 1.5,
			FadeDuration:  1.5,
			MusicVolume:   0.5,
		},
		Story: StoryConfig{
			Enabled:        true,
			TypingInterval: 0.04,
			TypingVolume:   0.5,
		},
		Audio: AudioConfig{
			JumpVolume:     0.7,
			GameOverVolume: 1.0,
		},
		Input: InputConfig{
			SwipeThresholdCells:  4,
			SwipeThresholdPixels: 50,
		},
		View: ViewConfig{
			VisibleAhead:  60,
			VisibleBehind: 6,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
