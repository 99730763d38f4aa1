package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultisetAddSubtract(t *testing.T) {
	m := MultisetFromWord("BANANA")
	assert.Equal(t, 6, m.Size())
	assert.Equal(t, 3, m.Count('A'))
	assert.Equal(t, 2, m.Count('N'))
	assert.Equal(t, []string{"B", "A", "A", "A", "N", "N"}, m.Letters())

	m.Subtract(MultisetFromWord("NAB"))
	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 0, m.Count('B'))
	assert.Equal(t, []string{"A", "A", "N"}, m.Letters())
}

func TestMultisetSubset(t *testing.T) {
	pool := MultisetFromWord("BATS")
	assert.True(t, MultisetFromWord("BAT").IsSubsetOf(pool))
	assert.True(t, MultisetFromWord("BATS").IsSubsetOf(pool))
	assert.False(t, MultisetFromWord("BATT").IsSubsetOf(pool), "multiplicity matters")
	assert.False(t, MultisetFromWord("BAR").IsSubsetOf(pool))
	assert.True(t, NewMultiset().IsSubsetOf(pool))
}

func TestMultisetMinus(t *testing.T) {
	diff := MultisetFromWord("STAB").Minus(MultisetFromWord("BAT"))
	assert.Equal(t, []string{"S"}, diff.Letters())

	// Minus does not mutate its operands.
	whole := MultisetFromWord("STAB")
	whole.Minus(MultisetFromWord("BAT"))
	assert.Equal(t, 4, whole.Size())
}

func TestMultisetOrderSurvivesReAdd(t *testing.T) {
	m := NewMultiset()
	m.Add('X', 1)
	m.Add('Y', 1)
	m.Subtract(MultisetFromWord("X"))
	m.Add('X', 1)
	assert.Equal(t, []string{"Y", "X"}, m.Letters())
}
