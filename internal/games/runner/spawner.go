package runner

import (
	"math/rand"

	"github.com/vovakirdan/neometro/internal/config"
)

// Spawner schedules obstacles ahead of the reference point using pooled
// instances, and returns them to the pool once they fall behind.
type Spawner struct {
	pool    *ObstaclePool
	rng     *rand.Rand
	cfg     config.ObstacleConfig
	lanes   [LaneCount]float64
	nextZ   float64
	skipped int

	// OnSpawn, when set, is called for every obstacle placed.
	OnSpawn func(o *Obstacle)
}

// NewSpawner creates a spawner drawing from pool. Lane offsets are
// -laneDistance, 0 and +laneDistance.
func NewSpawner(pool *ObstaclePool, rng *rand.Rand, cfg config.ObstacleConfig, laneDistance float64) *Spawner {
	return &Spawner{
		pool:  pool,
		rng:   rng,
		cfg:   cfg,
		lanes: [LaneCount]float64{-laneDistance, 0, laneDistance},
	}
}

// Start places the opening obstacles of a run, beginning FirstOffset ahead of
// refZ, and schedules the next spawn after them.
func (s *Spawner) Start(refZ float64) {
	s.skipped = 0
	z := refZ + s.cfg.FirstOffset
	for range s.cfg.InitialCount {
		s.spawnAt(z)
		z += s.spacing()
	}
	s.nextZ = z
}

// EnsureSpawned spawns obstacles while the next scheduled position lies
// within ahead of refZ. It returns the number of obstacles placed.
func (s *Spawner) EnsureSpawned(refZ, ahead float64) int {
	placed := 0
	for s.nextZ < refZ+ahead {
		if s.spawnAt(s.nextZ) {
			placed++
		}
		s.nextZ += s.spacing()
	}
	return placed
}

// Despawn returns every active obstacle that has fallen DespawnOffset behind
// refZ to the pool and reports how many were released.
func (s *Spawner) Despawn(refZ float64) int {
	released := 0
	for _, o := range s.pool.items {
		if o.Active && o.Pos.Z < refZ+s.cfg.DespawnOffset {
			s.pool.Release(o)
			released++
		}
	}
	return released
}

// Collide returns the first active obstacle overlapping box and releases it,
// or nil when nothing is hit.
func (s *Spawner) Collide(box Box) *Obstacle {
	for _, o := range s.pool.items {
		if o.Active && s.Bounds(o).Intersects(box) {
			s.pool.Release(o)
			return o
		}
	}
	return nil
}

// Bounds returns the collision box of an obstacle.
func (s *Spawner) Bounds(o *Obstacle) Box {
	return BoxAt(o.Pos, s.cfg.Width, s.cfg.Height, s.cfg.Length)
}

// NextZ returns the position of the next scheduled spawn.
func (s *Spawner) NextZ() float64 {
	return s.nextZ
}

// Skipped returns how many scheduled spawns were dropped because the pool
// was exhausted since the last Start.
func (s *Spawner) Skipped() int {
	return s.skipped
}

func (s *Spawner) spawnAt(z float64) bool {
	o := s.pool.Acquire()
	if o == nil {
		s.skipped++
		return false
	}
	o.Lane = s.rng.Intn(LaneCount)
	o.Pos = Vec3{X: s.lanes[o.Lane], Y: 0, Z: z}
	if s.OnSpawn != nil {
		s.OnSpawn(o)
	}
	return true
}

// spacing draws a uniform gap in [MinSpacing, MaxSpacing).
func (s *Spawner) spacing() float64 {
	return s.cfg.MinSpacing + s.rng.Float64()*(s.cfg.MaxSpacing-s.cfg.MinSpacing)
}
