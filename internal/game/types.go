// internal/game/types.go
//
// Public projections and collaborator interfaces for the game engine.
// Defines:
//   - Dictionary: the injected English-word legality oracle.
//   - State: the broadcast-safe view of a game (never exposes draw order).

package game

// Dictionary decides word legality. Implementations live outside this
// package (see internal/words); tests inject stubs.
type Dictionary interface {
	// IsValidWord reports whether word is an acceptable English word.
	IsValidWord(word string) bool

	// IsValidStealCandidate reports whether newWord is an acceptable way to
	// steal oldWord. Bare pluralization (oldWord + "S") is not.
	IsValidStealCandidate(newWord, oldWord string) bool
}

// State is the public snapshot of a game, safe to serialize and broadcast.
// The unflipped draw order is deliberately absent so clients cannot peek.
type State struct {
	RevealedLetters  []string            `json:"revealedLetters"`
	RemainingLetters int                 `json:"remainingLetters"`
	PlayerWords      map[string][]string `json:"playerWords"`
}
