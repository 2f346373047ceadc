package runner

// TileSegment is one placeholder section of the world along the travel axis.
// Segments are never destroyed, only moved to the front of the ring.
type TileSegment struct {
	ID int
	Z  float64 // back edge; the segment covers [Z, Z+length)
}

// TileStreamer keeps a fixed ring of contiguous segments around the
// reference point, recycling the trailing one to the front once the
// reference point has fully passed it.
type TileStreamer struct {
	tiles  []TileSegment
	head   int // index of the trailing segment
	length float64
	nextZ  float64 // back edge of the slot after the front segment
}

// NewTileStreamer lays out count segments of the given length from startZ.
func NewTileStreamer(count int, length, startZ float64) *TileStreamer {
	s := &TileStreamer{
		tiles:  make([]TileSegment, max(count, 1)),
		length: length,
	}
	s.Reset(startZ)
	return s
}

// Reset lays the ring out again from startZ.
func (s *TileStreamer) Reset(startZ float64) {
	for i := range s.tiles {
		s.tiles[i] = TileSegment{ID: i, Z: startZ + float64(i)*s.length}
	}
	s.head = 0
	s.nextZ = startZ + float64(len(s.tiles))*s.length
}

// Advance recycles trailing segments until the trailing one again contains
// refZ, and reports how many were moved. A large jump of refZ recycles
// several segments in the same call.
func (s *TileStreamer) Advance(refZ float64) int {
	moved := 0
	for refZ-s.tiles[s.head].Z > s.length {
		s.tiles[s.head].Z = s.nextZ
		s.nextZ += s.length
		s.head = (s.head + 1) % len(s.tiles)
		moved++
	}
	return moved
}

// Segments returns a copy of the ring ordered back to front.
func (s *TileStreamer) Segments() []TileSegment {
	out := make([]TileSegment, 0, len(s.tiles))
	for i := range s.tiles {
		out = append(out, s.tiles[(s.head+i)%len(s.tiles)])
	}
	return out
}

// Span returns the covered interval [start, end).
func (s *TileStreamer) Span() (start, end float64) {
	return s.tiles[s.head].Z, s.nextZ
}

// Count returns the number of segments in the ring.
func (s *TileStreamer) Count() int {
	return len(s.tiles)
}

// Length returns the length of one segment.
func (s *TileStreamer) Length() float64 {
	return s.length
}
