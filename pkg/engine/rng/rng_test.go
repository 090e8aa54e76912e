package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Range(0, 1000), b.Range(0, 1000))
		assert.Equal(t, a.RollDice(2, 6), b.RollDice(2, 6))
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestRangeBounds(t *testing.T) {
	g := New(7)
	for i := 0; i < 1000; i++ {
		v := g.Range(3, 9)
		assert.GreaterOrEqual(t, v, 3)
		assert.Less(t, v, 9)
	}
	assert.Equal(t, 5, g.Range(5, 5), "empty range yields min")
	assert.Equal(t, 0, g.Intn(0))
}

func TestRollDiceBounds(t *testing.T) {
	g := New(1)
	for i := 0; i < 1000; i++ {
		v := g.RollDice(3, 6)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 18)
	}
	assert.Equal(t, 0, g.RollDice(0, 6))
	assert.Equal(t, 0, g.RollDice(2, 0))
}
