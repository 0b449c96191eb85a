package qsim

import (
	"math/rand"
	"time"
)

// RandomSource is the single source of randomness for measurement
// collapse, noise draws, and gate-error draws. *math/rand.Rand satisfies
// it; tests inject a seeded instance for deterministic runs. One draw per
// stochastic decision, never retried.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

func defaultRandomSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
