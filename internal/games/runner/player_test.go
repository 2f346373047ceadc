package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
)

const testDt = 1.0 / 60

func newTestPlayer() *Player {
	cfg := config.DefaultRunnerConfig()
	return NewPlayer(cfg.Player, config.NewSpeedRamp(cfg.Speed))
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestPlayerStartsCentered(t *testing.T) {
	p := newTestPlayer()

	assert.Equal(t, CenterLane, p.Lane())
	assert.Equal(t, 10.0, p.Speed())
	assert.True(t, p.Grounded())
	assert.False(t, p.Stumbling())
}

func TestPlayerLaneStaysOnRoad(t *testing.T) {
	p := newTestPlayer()
	seq := []core.Action{
		core.ActionLeft, core.ActionLeft, core.ActionLeft, core.ActionRight,
		core.ActionRight, core.ActionRight, core.ActionRight, core.ActionLeft,
	}
	want := []int{0, 0, 0, 1, 2, 2, 2, 1}

	for i, a := range seq {
		p.Update(testDt, input(a))
		assert.Equal(t, want[i], p.Lane(), "after input %d (%s)", i, a)
		assert.GreaterOrEqual(t, p.Lane(), 0)
		assert.LessOrEqual(t, p.Lane(), LaneCount-1)
	}
}

func TestPlayerLateralApproach(t *testing.T) {
	p := newTestPlayer()

	mv := p.Update(testDt, input(core.ActionRight))
	assert.True(t, mv.LaneChanged)
	assert.InDelta(t, 8*testDt, p.Position().X, 1e-9, "lateral motion is rate limited")
	assert.InDelta(t, 8*testDt, mv.Delta.X, 1e-9)

	for range 40 {
		p.Update(testDt, input())
	}
	assert.Equal(t, 5.0, p.Position().X)
}

func TestPlayerJump(t *testing.T) {
	p := newTestPlayer()

	mv := p.Update(testDt, input(core.ActionJump))
	assert.True(t, mv.Jumped)
	assert.False(t, p.Grounded())
	assert.InDelta(t, 8*testDt, p.Position().Y, 1e-9)

	mv = p.Update(testDt, input(core.ActionJump))
	assert.False(t, mv.Jumped, "no double jump")

	peak := 0.0
	for range 120 {
		p.Update(testDt, input())
		peak = max(peak, p.Position().Y)
	}
	assert.True(t, p.Grounded())
	assert.Equal(t, 0.0, p.Position().Y)
	// v^2 / 2g = 64 / 40
	assert.InDelta(t, 1.6, peak, 0.15)
}

func TestPlayerSpeedRamp(t *testing.T) {
	p := newTestPlayer()

	mv := p.Update(testDt, input())
	assert.InDelta(t, 10*testDt, mv.Delta.Z, 1e-9)

	for range 299 {
		p.Update(testDt, input())
	}
	assert.InDelta(t, 10.0, p.Speed(), 1e-9, "no increase during the warm-up")
	assert.InDelta(t, 5.0, p.Elapsed(), 1e-9)

	for range 300 {
		p.Update(testDt, input())
	}
	assert.InDelta(t, 10.5, p.Speed(), 1e-6)

	for range 60 * 1000 {
		p.Update(testDt, input())
	}
	assert.Equal(t, 25.0, p.Speed(), "speed is capped")
}

func TestPlayerStumble(t *testing.T) {
	p := newTestPlayer()
	for range 10 {
		p.Update(testDt, input())
	}

	elapsed := p.Elapsed()
	assert.True(t, p.Stumble())
	assert.False(t, p.Stumble())
	assert.Zero(t, p.Speed())

	z := p.Position().Z
	for range 30 {
		mv := p.Update(testDt, input(core.ActionLeft, core.ActionJump))
		assert.False(t, mv.Jumped)
		assert.False(t, mv.LaneChanged)
	}
	assert.Equal(t, z, p.Position().Z)
	assert.Equal(t, CenterLane, p.Lane())
	assert.Equal(t, elapsed, p.Elapsed(), "the ramp clock stops while stumbling")

	p.Reset(Vec3{})
	assert.False(t, p.Stumbling())
	assert.Zero(t, p.Elapsed())
	assert.Equal(t, 10.0, p.Speed())
	assert.Equal(t, Vec3{}, p.Position())
}
