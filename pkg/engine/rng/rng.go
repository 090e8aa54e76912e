// Package rng provides the seeded random stream handed to every generation stage.
package rng

import "math/rand"

// RNG is a deterministic random stream. Two streams created with the same
// seed produce the same sequence.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// New creates a stream from a seed
func New(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the stream was created with
func (g *RNG) Seed() int64 {
	return g.seed
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.Intn(n)
}

// Range returns a value in [min, max). An empty range yields min.
func (g *RNG) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.r.Intn(max-min)
}

// RollDice rolls n dice with the given number of sides and sums them
func (g *RNG) RollDice(n, sides int) int {
	if sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += g.r.Intn(sides) + 1
	}
	return total
}

// Float64 returns a value in [0, 1)
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Chance returns true with probability p
func (g *RNG) Chance(p float64) bool {
	return g.r.Float64() < p
}

// Int63 returns a non-negative 63-bit value, used to seed derived generators
func (g *RNG) Int63() int64 {
	return g.r.Int63()
}

// Shuffle randomises the order of n elements
func (g *RNG) Shuffle(n int, swap func(i, j int)) {
	g.r.Shuffle(n, swap)
}
