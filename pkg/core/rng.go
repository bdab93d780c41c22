package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for
// deterministic seeding. All probabilistic decisions in a tick draw
// from the one stream in a fixed order, which is what makes seeded
// runs reproducible.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float32 returns a random value in [0, 1).
func (r *RNG) Float32() float32 {
	return r.r.Float32()
}

// IntN returns a random int in [0, n).
func (r *RNG) IntN(n int) int {
	return r.r.IntN(n)
}

// Uint16N returns a random uint16 in [0, n).
func (r *RNG) Uint16N(n uint16) uint16 {
	if n == 0 {
		return 0
	}
	return uint16(r.r.IntN(int(n)))
}

// Uint8 returns a random byte.
func (r *RNG) Uint8() uint8 {
	return uint8(r.r.IntN(256))
}

// Ratio reports true with probability num/den. A zero den never fires;
// num >= den always fires.
func (r *RNG) Ratio(num, den uint32) bool {
	if den == 0 {
		return false
	}
	if num >= den {
		return true
	}
	return r.r.Uint32N(den) < num
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
