package ports

// Source is the randomness provider for dice rolls.
//
// Implementations must be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n). n must be > 0.
	Intn(n int) int
}
