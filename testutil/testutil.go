package testutil

import (
	"math/rand"
	"sync"
)

// RNG is a seeded random source safe for concurrent use.
type RNG struct {
	mu   sync.Mutex
	src  *rand.Rand
	seed int64
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed)), seed: seed}
}

func (r *RNG) locked(fn func(src *rand.Rand)) {
	r.mu.Lock()
	fn(r.src)
	r.mu.Unlock()
}

// Reset restarts the sequence from the original seed.
func (r *RNG) Reset() {
	r.locked(func(src *rand.Rand) { src.Seed(r.seed) })
}

// Seed returns the original seed.
func (r *RNG) Seed() int64 { return r.seed }

// Intn returns a value in [0, n).
func (r *RNG) Intn(n int) (v int) {
	r.locked(func(src *rand.Rand) { v = src.Intn(n) })
	return v
}

// Uint64 returns a uniformly distributed uint64.
func (r *RNG) Uint64() (v uint64) {
	r.locked(func(src *rand.Rand) { v = src.Uint64() })
	return v
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() (v float64) {
	r.locked(func(src *rand.Rand) { v = src.Float64() })
	return v
}

// BitString returns n random '0'/'1' characters, the input format of
// bitfield.FromString.
func (r *RNG) BitString(n int) string {
	out := make([]byte, n)
	r.locked(func(src *rand.Rand) {
		for i := range out {
			out[i] = '0' + byte(src.Intn(2))
		}
	})
	return string(out)
}

// BinaryValues returns the attribute values of a random binary instance.
func (r *RNG) BinaryValues(n int) []float64 {
	out := make([]float64, n)
	r.locked(func(src *rand.Rand) {
		for i := range out {
			out[i] = float64(src.Intn(2))
		}
	})
	return out
}
