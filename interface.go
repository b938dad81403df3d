package poissondisk

// Rand is the randomness a Sequence consumes. *math/rand/v2.Rand satisfies it.
// We never seed anything ourselves, so the same Rand state & Config always
// give the same samples.
type Rand interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64

	// IntN returns a uniform value in [0, n), n > 0
	IntN(n int) int
}
