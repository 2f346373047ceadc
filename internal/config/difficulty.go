package config

// SpeedRamp computes forward speed from time spent running: constant during
// the warm-up delay, then rising linearly until it reaches the cap.
type SpeedRamp struct {
	cfg SpeedConfig
}

// NewSpeedRamp creates a ramp for the given speed settings.
func NewSpeedRamp(cfg SpeedConfig) *SpeedRamp {
	return &SpeedRamp{cfg: cfg}
}

// Base returns the speed a run starts with.
func (r *SpeedRamp) Base() float64 {
	return r.cfg.Base
}

// Max returns the speed cap.
func (r *SpeedRamp) Max() float64 {
	return r.cfg.Max
}

// IsEnabled returns whether the speed changes at all.
func (r *SpeedRamp) IsEnabled() bool {
	return r.cfg.IncreaseRate > 0 && r.cfg.Max > r.cfg.Base
}

// Speed returns the forward speed after elapsed seconds of running.
func (r *SpeedRamp) Speed(elapsed float64) float64 {
	if elapsed <= r.cfg.IncreaseDelay {
		return r.cfg.Base
	}
	return min(r.cfg.Base+(elapsed-r.cfg.IncreaseDelay)*r.cfg.IncreaseRate, r.cfg.Max)
}

// Level returns progress through the ramp from 0 (base speed) to 1 (capped).
func (r *SpeedRamp) Level(elapsed float64) float64 {
	if !r.IsEnabled() {
		return 0
	}
	return clampF((r.Speed(elapsed)-r.cfg.Base)/(r.cfg.Max-r.cfg.Base), 0, 1)
}

// ApplyPreset adjusts the speed settings for a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base = 8
		cfg.Speed.IncreaseRate = 0.05
		cfg.Speed.Max = 18
	case DifficultyNormal:
		d := DefaultRunnerConfig().Speed
		cfg.Speed = d
	case DifficultyHard:
		cfg.Speed.Base = 14
		cfg.Speed.IncreaseRate = 0.2
		cfg.Speed.IncreaseDelay = 2
		cfg.Speed.Max = 32
		cfg.Obstacles.MinSpacing = 12
		cfg.Obstacles.MaxSpacing = 20
	case DifficultyFixed:
		cfg.Speed.IncreaseRate = 0
		cfg.Speed.Max = cfg.Speed.Base
	}
}

func clampF(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}
