package runner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRing(t *testing.T, s *TileStreamer, refZ float64) {
	t.Helper()
	segs := s.Segments()
	require.Len(t, segs, s.Count())
	for i := 1; i < len(segs); i++ {
		assert.Equal(t, segs[i-1].Z+s.Length(), segs[i].Z, "segments %d and %d are not contiguous", i-1, i)
	}
	assert.LessOrEqual(t, segs[0].Z, refZ)
	assert.LessOrEqual(t, refZ-segs[0].Z, s.Length())
	_, end := s.Span()
	assert.GreaterOrEqual(t, end-refZ, float64(s.Count()-1)*s.Length())
}

func TestTileStreamerInitialLayout(t *testing.T) {
	s := NewTileStreamer(5, 50, 0)

	start, end := s.Span()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 250.0, end)
	assertRing(t, s, 0)
}

func TestTileStreamerRecyclesOnlyAfterFullPass(t *testing.T) {
	s := NewTileStreamer(5, 50, 0)

	assert.Equal(t, 0, s.Advance(49))
	assert.Equal(t, 0, s.Advance(50))
	assert.Equal(t, 1, s.Advance(51))

	segs := s.Segments()
	assert.Equal(t, 50.0, segs[0].Z)
	assert.Equal(t, 250.0, segs[len(segs)-1].Z)
	assert.Equal(t, 0, segs[len(segs)-1].ID, "the trailing segment is reused, not replaced")
}

// The ring covers [refZ, refZ+(N-1)L) ahead of the reference point: the
// trailing segment stays in place until refZ has moved a full length past it.
func TestTileStreamerCoverageBoundary(t *testing.T) {
	s := NewTileStreamer(5, 50, 0)

	assert.Zero(t, s.Advance(50))
	start, end := s.Span()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 250.0, end)
	assert.Equal(t, 50+4*50.0, end, "one segment short of refZ+N*L")

	assert.Equal(t, 1, s.Advance(50.5))
	start, end = s.Span()
	assert.Equal(t, 50.0, start)
	assert.Equal(t, 300.0, end)
}

func TestTileStreamerLargeJump(t *testing.T) {
	s := NewTileStreamer(5, 50, 0)

	moved := s.Advance(1000)
	assert.Equal(t, 19, moved)
	assert.Equal(t, 950.0, s.Segments()[0].Z)
	assertRing(t, s, 1000)
}

func TestTileStreamerCoverageUnderRandomMotion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewTileStreamer(5, 50, 0)

	z := 0.0
	for range 2000 {
		// Mostly small steps with the occasional resume-from-pause jump.
		step := rng.Float64()
		if rng.Intn(50) == 0 {
			step = rng.Float64() * 400
		}
		z += step
		s.Advance(z)
		assertRing(t, s, z)
	}
}

func TestTileStreamerReset(t *testing.T) {
	s := NewTileStreamer(3, 10, 0)
	s.Advance(100)

	s.Reset(5)
	segs := s.Segments()
	assert.Equal(t, []TileSegment{{ID: 0, Z: 5}, {ID: 1, Z: 15}, {ID: 2, Z: 25}}, segs)
}
