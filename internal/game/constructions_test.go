package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindConstructionsFromPool(t *testing.T) {
	s := State{
		RevealedLetters: []string{"B", "A", "T"},
		PlayerWords:     map[string][]string{},
	}
	assert.Equal(t, []Construction{{FromPool: true}}, FindConstructions("BAT", s))
	assert.Empty(t, FindConstructions("BATS", s))
}

func TestFindConstructionsSteal(t *testing.T) {
	s := State{
		RevealedLetters: []string{"S"},
		PlayerWords:     map[string][]string{"p1": {"BAT"}},
	}
	assert.Equal(t, []Construction{{OriginPlayer: "p1", OriginWord: "BAT"}},
		FindConstructions("STAB", s))

	// Equal length is not a steal.
	assert.Empty(t, FindConstructions("TAB", s))
}

// Pool-based construction is always enumerated first, and steal candidates
// come back in sorted player-id order.
func TestFindConstructionsOrder(t *testing.T) {
	s := State{
		RevealedLetters: []string{"S", "T", "A", "B"},
		PlayerWords: map[string][]string{
			"zed": {"BAT"},
			"amy": {"TAB"},
		},
	}
	assert.Equal(t, []Construction{
		{FromPool: true},
		{OriginPlayer: "amy", OriginWord: "TAB"},
		{OriginPlayer: "zed", OriginWord: "BAT"},
	}, FindConstructions("STAB", s))
}

func TestFindConstructionsStealNeedsPoolCoverage(t *testing.T) {
	s := State{
		RevealedLetters: []string{},
		PlayerWords:     map[string][]string{"p1": {"BAT"}},
	}
	assert.Empty(t, FindConstructions("STAB", s), "S is not in the pool")
}
