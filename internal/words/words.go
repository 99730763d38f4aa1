// internal/words/words.go
//
// English-word legality oracle for the game engine.
//
// Responsibilities:
//   - Load the dictionary from an environment-provided file or fall back to
//     the embedded default list.
//   - Answer membership lookups (IsValid).
//   - Apply the steal-candidate rule: a steal may not be a bare
//     pluralization of the origin word (origin + "S"), since flipping a lone
//     S already allows that claim.
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load one word per line from that file.
//   2. Otherwise fall back to the embedded default list.
//
// Constraints:
//   • Words shorter than 3 letters or with non-letters are discarded.
//   • Lookups are case-insensitive; the set is normalized to uppercase.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	_ "embed"
	"errors"
	"os"
	"strings"
	"sync"
)

//go:embed default_words.txt
var embeddedWords string

var (
	initOnce   sync.Once
	wordSet    map[string]struct{}
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var list []string

		if path := os.Getenv("WORDS_FILE"); path != "" {
			var err error
			list, err = readWordFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			list = normalizeLines(embeddedWords)
		}

		wordSet = make(map[string]struct{}, len(list))
		for _, w := range list {
			wordSet[w] = struct{}{}
		}

		if len(wordSet) == 0 {
			initialErr = errors.New("words: dictionary is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line, uppercases, trims, and keeps only
// alphabetic words of 3+ letters.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalizeWord(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes an embedded multiline string into valid words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalizeWord(line); ok {
			out = append(out, w)
		}
	}
	return out
}

// normalizeWord uppercases and validates a single candidate entry.
func normalizeWord(raw string) (string, bool) {
	w := strings.ToUpper(strings.TrimSpace(raw))
	if len(w) < 3 || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// IsValid reports whether w is in the dictionary.
func IsValid(w string) bool {
	_, ok := wordSet[strings.ToUpper(strings.TrimSpace(w))]
	return ok
}

// IsValidSteal reports whether newWord is an acceptable steal of oldWord.
// Dictionary membership is checked separately; this only enforces the
// no-bare-pluralization rule.
func IsValidSteal(newWord, oldWord string) bool {
	return !strings.EqualFold(strings.TrimSpace(newWord), strings.TrimSpace(oldWord)+"S")
}

// Count returns the number of loaded words.
func Count() int {
	return len(wordSet)
}

// Dictionary adapts the package to the engine's oracle interface
// (game.Dictionary). The zero value is ready to use after Init.
type Dictionary struct{}

func (Dictionary) IsValidWord(word string) bool {
	return IsValid(word)
}

func (Dictionary) IsValidStealCandidate(newWord, oldWord string) bool {
	return IsValidSteal(newWord, oldWord)
}
