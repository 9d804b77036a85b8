package games

import (
	"math/rand"
	"time"
)

// Rand is the random source used by all game logic. *math/rand.Rand
// satisfies it; tests inject a fixed-seed source for deterministic outcomes.
type Rand interface {
	Intn(n int) int
	Int63n(n int64) int64
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time-seeded random source for production use.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRand returns a deterministic source for tests.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
