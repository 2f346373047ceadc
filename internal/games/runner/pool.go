package runner

// Obstacle is a pooled obstacle instance.
type Obstacle struct {
	ID     int
	Pos    Vec3 // base center on the ground
	Lane   int
	Active bool
}

// ObstaclePool hands out reusable obstacle instances.
//
// It starts with a pre-warmed set of inactive instances and grows on demand.
// A non-zero limit caps growth; Acquire then returns nil until something is
// released.
type ObstaclePool struct {
	items []*Obstacle
	limit int
}

// NewObstaclePool creates a pool with initial inactive instances and an
// optional hard cap (0 = unbounded).
func NewObstaclePool(initial, limit int) *ObstaclePool {
	p := &ObstaclePool{
		items: make([]*Obstacle, 0, initial),
		limit: limit,
	}
	for range initial {
		p.grow()
	}
	return p
}

func (p *ObstaclePool) grow() *Obstacle {
	o := &Obstacle{ID: len(p.items)}
	p.items = append(p.items, o)
	return o
}

// Acquire returns an inactive instance, marked active. It allocates a new one
// only when every existing instance is in use, and returns nil when the cap
// has been reached.
func (p *ObstaclePool) Acquire() *Obstacle {
	for _, o := range p.items {
		if !o.Active {
			o.Active = true
			return o
		}
	}
	if p.limit > 0 && len(p.items) >= p.limit {
		return nil
	}
	o := p.grow()
	o.Active = true
	return o
}

// Release marks an instance inactive and eligible for reuse.
func (p *ObstaclePool) Release(o *Obstacle) {
	if o != nil {
		o.Active = false
	}
}

// ReleaseAll deactivates every instance without discarding any.
func (p *ObstaclePool) ReleaseAll() {
	for _, o := range p.items {
		o.Active = false
	}
}

// Active returns the active instances in pool order.
func (p *ObstaclePool) Active() []*Obstacle {
	out := make([]*Obstacle, 0, len(p.items))
	for _, o := range p.items {
		if o.Active {
			out = append(out, o)
		}
	}
	return out
}

// ActiveCount returns how many instances are in use.
func (p *ObstaclePool) ActiveCount() int {
	n := 0
	for _, o := range p.items {
		if o.Active {
			n++
		}
	}
	return n
}

// Len returns the number of instances ever allocated.
func (p *ObstaclePool) Len() int {
	return len(p.items)
}

// Cap returns the hard cap, 0 if unbounded.
func (p *ObstaclePool) Cap() int {
	return p.limit
}
