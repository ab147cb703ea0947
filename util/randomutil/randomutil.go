package randomutil

import (
	"math/rand"
	"time"
)

// RandomGenerator is the randomness seam for code that must be deterministic under test.
type RandomGenerator interface {
	GenerateInt63() int64
}

// RandomNumberGenerator draws from a math/rand source seeded at construction.
// Not cryptographically secure, and not safe for concurrent use.
type RandomNumberGenerator struct {
	rng *rand.Rand
}

func NewRandomNumberGenerator() *RandomNumberGenerator {
	return NewSeededRandomNumberGenerator(time.Now().UnixNano())
}

func NewSeededRandomNumberGenerator(seed int64) *RandomNumberGenerator {
	return &RandomNumberGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *RandomNumberGenerator) GenerateInt63() int64 {
	return g.rng.Int63()
}
