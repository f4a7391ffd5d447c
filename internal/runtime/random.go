package runtime

import (
	"math/rand/v2"
	"sync"
)

// GlobalSource draws from the auto-seeded math/rand/v2 generator.
type GlobalSource struct{}

// Intn returns a value in [0, n).
func (GlobalSource) Intn(n int) int { return rand.IntN(n) }

// SeededSource is a deterministic source for reproducible rolls.
// Safe for concurrent use.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a PCG-backed source. The same seed yields the same draws.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a value in [0, n).
func (s *SeededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// FixedSource replays a fixed list of draws, wrapping around when exhausted.
// Each value is a zero-based draw; a die face is draw+1.
type FixedSource struct {
	mu    sync.Mutex
	draws []int
	next  int
}

// NewFixedSource returns a source that yields the given faces (1-based) in order.
func NewFixedSource(faces ...int) *FixedSource {
	draws := make([]int, len(faces))
	for i, f := range faces {
		draws[i] = f - 1
	}
	return &FixedSource{draws: draws}
}

// Intn returns the next scripted draw clamped to [0, n).
func (s *FixedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
