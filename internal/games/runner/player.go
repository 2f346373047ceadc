package runner

import (
	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
)

const (
	LaneCount  = 3
	CenterLane = 1
)

// Movement describes what happened to the player during one tick.
type Movement struct {
	Delta       Vec3
	Jumped      bool
	LaneChanged bool
}

// Player is the movement controller. It owns the reference point: the
// position every other component streams, spawns and scores against.
type Player struct {
	cfg  config.PlayerConfig
	ramp *config.SpeedRamp

	pos       Vec3
	lane      int
	vertVel   float64
	speed     float64
	elapsed   float64 // seconds of running, drives the speed ramp
	grounded  bool
	stumbling bool
}

// NewPlayer creates a player at the origin in the center lane.
func NewPlayer(cfg config.PlayerConfig, ramp *config.SpeedRamp) *Player {
	p := &Player{cfg: cfg, ramp: ramp}
	p.Reset(Vec3{})
	return p
}

// Reset puts the player back at start in the center lane at base speed and
// clears the stumble.
func (p *Player) Reset(start Vec3) {
	p.pos = start
	p.lane = CenterLane
	p.vertVel = p.cfg.GroundedBias
	p.speed = p.ramp.Base()
	p.elapsed = 0
	p.grounded = start.Y <= 0
	p.stumbling = false
}

// Update advances the player by dt seconds.
func (p *Player) Update(dt float64, in core.InputFrame) Movement {
	var mv Movement

	if !p.stumbling {
		if dir := in.Lateral(); dir != 0 {
			mv.LaneChanged = p.MoveLane(dir)
		}
		if in.Has(core.ActionJump) {
			mv.Jumped = p.Jump()
		}
		p.elapsed += dt
		p.speed = p.ramp.Speed(p.elapsed)
	}

	if p.grounded {
		if p.vertVel < 0 {
			p.vertVel = p.cfg.GroundedBias
		}
	} else {
		p.vertVel += p.cfg.Gravity * dt
	}

	newX := core.MoveTowards(p.pos.X, p.LaneX(p.lane), p.cfg.LaneChangeSpeed*dt)
	mv.Delta = Vec3{
		X: newX - p.pos.X,
		Y: p.vertVel * dt,
		Z: p.speed * dt,
	}
	p.move(mv.Delta)
	return mv
}

// move applies a displacement and resolves ground contact.
func (p *Player) move(d Vec3) {
	p.pos = p.pos.Add(d)
	if p.pos.Y <= 0 {
		p.pos.Y = 0
		p.grounded = true
	} else {
		p.grounded = false
	}
}

// MoveLane shifts the target lane by dir, clamped to the road. It reports
// whether the lane changed.
func (p *Player) MoveLane(dir int) bool {
	target := core.Clamp(p.lane+dir, 0, LaneCount-1)
	if target == p.lane {
		return false
	}
	p.lane = target
	return true
}

// Jump launches the player if grounded.
func (p *Player) Jump() bool {
	if !p.grounded {
		return false
	}
	p.vertVel = p.cfg.JumpForce
	return true
}

// Stumble stops the player and disables input until Reset. It reports
// false if the player was already stumbling.
func (p *Player) Stumble() bool {
	if p.stumbling {
		return false
	}
	p.stumbling = true
	p.speed = 0
	return true
}

// LaneX returns the lateral offset of a lane.
func (p *Player) LaneX(lane int) float64 {
	return float64(lane-CenterLane) * p.cfg.LaneDistance
}

// Bounds returns the player's collision box.
func (p *Player) Bounds() Box {
	return BoxAt(p.pos, p.cfg.Width, p.cfg.Height, p.cfg.Length)
}

func (p *Player) Position() Vec3   { return p.pos }
func (p *Player) Lane() int        { return p.lane }
func (p *Player) Speed() float64   { return p.speed }
func (p *Player) Grounded() bool   { return p.grounded }
func (p *Player) Stumbling() bool  { return p.stumbling }
func (p *Player) Elapsed() float64 { return p.elapsed }
