package runner

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neometro/internal/config"
)

// Score converts distance travelled into points with diminishing returns:
//
//	floor(distance * pointsPerMeter / (1 + distance/100)^ramp)
//
// Non-positive distances score 0. For ramp in [0, 1] the result is
// non-decreasing in distance.
func Score(distance float64, pointsPerMeter int, ramp float64) int {
	if distance <= 0 || pointsPerMeter <= 0 {
		return 0
	}
	difficulty := 1 + distance/100
	adjusted := float64(pointsPerMeter) / math.Pow(difficulty, ramp)
	return int(math.Floor(distance * adjusted))
}

// Scorer tracks the score of the current run and the persisted high score.
type Scorer struct {
	cfg   config.ScoreConfig
	prefs Prefs
	log   *log.Logger

	startZ  float64
	current int
	high    int
	active  bool
}

// NewScorer creates a scorer and loads the high score from prefs.
func NewScorer(cfg config.ScoreConfig, prefs Prefs, logger *log.Logger) *Scorer {
	s := &Scorer{cfg: cfg, prefs: prefs, log: logger}
	high, err := prefs.Int(KeyHighScore)
	if err != nil {
		logger.Warn("reading high score", "error", err)
	}
	s.high = max(high, 0)
	return s
}

// Reset starts scoring a new run from startZ.
func (s *Scorer) Reset(startZ float64) {
	s.startZ = startZ
	s.current = 0
	s.active = true
}

// Update recomputes the score for the reference position. The value shown
// never goes down during a run.
func (s *Scorer) Update(refZ float64) int {
	if !s.active {
		return s.current
	}
	if v := Score(refZ-s.startZ, s.cfg.PointsPerMeter, s.cfg.DifficultyRamp); v > s.current {
		s.current = v
	}
	return s.current
}

// Stop freezes the score and persists it when it beats the high score.
// Calling Stop again has no further effect.
func (s *Scorer) Stop() (final, high int, improved bool) {
	if !s.active {
		return s.current, s.high, false
	}
	s.active = false
	if s.current > s.high {
		s.high = s.current
		improved = true
		if err := s.prefs.SetInt(KeyHighScore, s.high); err != nil {
			s.log.Warn("saving high score", "error", err)
		}
	}
	return s.current, s.high, improved
}

func (s *Scorer) Current() int { return s.current }
func (s *Scorer) High() int    { return s.high }
func (s *Scorer) Active() bool { return s.active }
