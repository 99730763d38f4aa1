// internal/game/constructions.go
//
// Advisory resolver: given a candidate word and a game snapshot, enumerate
// the distinct legal ways it could be formed. Clients use this to decide
// which construction to submit; the engine re-derives legality against live
// state on submission, since the pool may have changed in between.

package game

import "sort"

// Construction is one legal way to form a word: from the revealed pool
// (FromPool true), or by stealing OriginWord from OriginPlayer.
type Construction struct {
	FromPool     bool
	OriginPlayer string
	OriginWord   string
}

// FindConstructions enumerates the legal constructions of word against the
// snapshot. The pool-based construction, when legal, always comes first;
// steal candidates follow in sorted player-id order, each player's words in
// the order they were claimed.
func FindConstructions(word string, s State) []Construction {
	word = normalize(word)
	var constructions []Construction

	wordLetters := MultisetFromWord(word)
	pool := NewMultiset()
	for _, l := range s.RevealedLetters {
		for _, r := range l {
			pool.Add(r, 1)
		}
	}

	if wordLetters.IsSubsetOf(pool) {
		constructions = append(constructions, Construction{FromPool: true})
	}

	playerIDs := make([]string, 0, len(s.PlayerWords))
	for id := range s.PlayerWords {
		playerIDs = append(playerIDs, id)
	}
	sort.Strings(playerIDs)

	for _, id := range playerIDs {
		for _, owned := range s.PlayerWords[id] {
			if len(word) <= len(owned) {
				continue
			}
			ownedLetters := MultisetFromWord(owned)
			if !ownedLetters.IsSubsetOf(wordLetters) {
				continue
			}
			if wordLetters.Minus(ownedLetters).IsSubsetOf(pool) {
				constructions = append(constructions, Construction{
					OriginPlayer: id,
					OriginWord:   owned,
				})
			}
		}
	}
	return constructions
}
