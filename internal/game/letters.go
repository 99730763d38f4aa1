// internal/game/letters.go
//
// The letter supply: the bananagrams-style frequency table and the shuffled
// draw pile built from it. 144 tiles total.

package game

import "math/rand/v2"

// letterFrequency defines how many of each tile the game uses.
var letterFrequency = map[rune]int{
	'A': 13, 'B': 3, 'C': 3, 'D': 6, 'E': 18,
	'F': 3, 'G': 4, 'H': 3, 'I': 12, 'J': 2,
	'K': 2, 'L': 5, 'M': 3, 'N': 8, 'O': 11,
	'P': 3, 'Q': 2, 'R': 9, 'S': 6, 'T': 9,
	'U': 6, 'V': 3, 'W': 3, 'X': 2, 'Y': 3,
	'Z': 2,
}

// TotalLetters is the fixed size of the letter supply.
const TotalLetters = 144

// newDeck builds the full tile supply and shuffles it once.
// Letters are drawn from the end of the slice.
func newDeck() []rune {
	deck := make([]rune, 0, TotalLetters)
	for letter := 'A'; letter <= 'Z'; letter++ {
		for i := 0; i < letterFrequency[letter]; i++ {
			deck = append(deck, letter)
		}
	}
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
