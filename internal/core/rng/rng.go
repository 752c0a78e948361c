// Package rng is the randomness seam: every random draw in the game goes
// through a Source so tests can script the outcome.
package rng

import (
	"math/rand/v2"
	"time"
)

//go:generate mockgen -destination=mock/mock.go -package=mockrng github.com/noname-game/horde/internal/core/rng Source

// Source supplies uniform draws.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// New returns a PCG-backed source. seed 0 seeds from the clock.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range returns a uniform value in [lo, hi). hi <= lo yields lo.
func Range(src Source, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}
