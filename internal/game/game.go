// internal/game/game.go
//
// Core engine for a single round of Snatch.
// Responsibilities:
//   - Own the shuffled draw pile, the revealed pool, and per-player words.
//   - Flip letters from the pile into the pool.
//   - Validate and apply word claims (from the pool) and steals (extending
//     another player's word with pool letters).
//
// Notes:
//   - English-word legality is delegated to the injected Dictionary.
//   - Claim/steal are all-or-nothing: every condition is checked before any
//     state is touched, and a rejection leaves the game unchanged.
//   - One Game is one round. Rooms replace the Game wholesale on reset.

package game

import "strings"

// MinWordLength is the shortest claimable word.
const MinWordLength = 3

// Game holds the letter supply and word ownership for one round.
type Game struct {
	unflipped   []rune
	revealed    *Multiset
	playerWords map[string][]string
	dict        Dictionary
}

// New constructs a game with a freshly shuffled deck.
func New(dict Dictionary) *Game {
	return &Game{
		unflipped:   newDeck(),
		revealed:    NewMultiset(),
		playerWords: make(map[string][]string),
		dict:        dict,
	}
}

// FlipNextLetter pops one letter from the draw pile into the revealed pool.
// Returns ("", false) without mutating anything once the pile is exhausted.
func (g *Game) FlipNextLetter() (string, bool) {
	if len(g.unflipped) == 0 {
		return "", false
	}
	letter := g.unflipped[len(g.unflipped)-1]
	g.unflipped = g.unflipped[:len(g.unflipped)-1]
	g.revealed.Add(letter, 1)
	return string(letter), true
}

// DeckIsEmpty reports whether the draw pile is exhausted.
func (g *Game) DeckIsEmpty() bool {
	return len(g.unflipped) == 0
}

// ClaimWord forms word entirely from the revealed pool for playerID.
// Legal iff the word is long enough, passes the dictionary, and its letters
// fit within the pool. Reports whether the claim was applied.
func (g *Game) ClaimWord(playerID, word string) bool {
	word = normalize(word)
	if len(word) < MinWordLength {
		return false
	}
	if !g.dict.IsValidWord(word) {
		return false
	}
	letters := MultisetFromWord(word)
	if !letters.IsSubsetOf(g.revealed) {
		return false
	}

	g.revealed.Subtract(letters)
	g.playerWords[playerID] = append(g.playerWords[playerID], word)
	return true
}

// StealWord forms newWord by consuming victim's oldWord plus pool letters.
// Legal iff:
//   - newWord passes the dictionary and is not a bare pluralization of oldWord,
//   - victim currently owns oldWord,
//   - oldWord's letters fit within newWord's and newWord is strictly longer,
//   - the remaining letters fit within the revealed pool.
//
// All conditions are checked before any mutation.
func (g *Game) StealWord(thiefID, newWord, victimID, oldWord string) bool {
	newWord = normalize(newWord)
	oldWord = normalize(oldWord)
	if len(newWord) < MinWordLength {
		return false
	}
	if !g.dict.IsValidWord(newWord) {
		return false
	}
	if !g.dict.IsValidStealCandidate(newWord, oldWord) {
		return false
	}
	if !g.ownsWord(victimID, oldWord) {
		return false
	}
	newLetters := MultisetFromWord(newWord)
	oldLetters := MultisetFromWord(oldWord)
	if !oldLetters.IsSubsetOf(newLetters) {
		return false
	}
	if len(newWord) <= len(oldWord) {
		return false
	}
	remaining := newLetters.Minus(oldLetters)
	if !remaining.IsSubsetOf(g.revealed) {
		return false
	}

	g.revealed.Subtract(remaining)
	g.removeWord(victimID, oldWord)
	g.playerWords[thiefID] = append(g.playerWords[thiefID], newWord)
	return true
}

// State returns the public snapshot of the game.
func (g *Game) State() State {
	words := make(map[string][]string, len(g.playerWords))
	for id, ws := range g.playerWords {
		words[id] = append(make([]string, 0, len(ws)), ws...)
	}
	return State{
		RevealedLetters:  g.revealed.Letters(),
		RemainingLetters: len(g.unflipped),
		PlayerWords:      words,
	}
}

func (g *Game) ownsWord(playerID, word string) bool {
	for _, w := range g.playerWords[playerID] {
		if w == word {
			return true
		}
	}
	return false
}

// removeWord removes exactly one occurrence of word from playerID.
func (g *Game) removeWord(playerID, word string) {
	words := g.playerWords[playerID]
	for i, w := range words {
		if w == word {
			g.playerWords[playerID] = append(words[:i], words[i+1:]...)
			return
		}
	}
}

func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}
