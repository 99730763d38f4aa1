// internal/game/multiset.go
//
// Letter multiset used for the revealed pool and for word letters.
// Responsibilities:
//   - Count letters with Add/Subtract/Count.
//   - Subset tests for claim/steal legality.
//   - An ordered expansion (Letters) for snapshots: distinct letters appear
//     in first-insertion order, repeated by multiplicity.
//
// The backing map is never handed out; Game is the only mutator.

package game

// Multiset maps letters to non-negative counts, remembering the order in
// which distinct letters were first added.
type Multiset struct {
	counts map[rune]int
	order  []rune
	size   int
}

// NewMultiset returns an empty multiset.
func NewMultiset() *Multiset {
	return &Multiset{counts: make(map[rune]int)}
}

// MultisetFromWord builds a multiset of the word's letters.
func MultisetFromWord(word string) *Multiset {
	m := NewMultiset()
	for _, r := range word {
		m.Add(r, 1)
	}
	return m
}

// Add increases the count of letter by n.
func (m *Multiset) Add(letter rune, n int) {
	if n <= 0 {
		return
	}
	if m.counts[letter] == 0 {
		m.order = append(m.order, letter)
	}
	m.counts[letter] += n
	m.size += n
}

// Subtract decreases counts by those of other, clamping at zero.
// Callers check IsSubsetOf first when exact removal matters.
func (m *Multiset) Subtract(other *Multiset) {
	for _, letter := range other.order {
		n := other.counts[letter]
		have := m.counts[letter]
		if n > have {
			n = have
		}
		if n == 0 {
			continue
		}
		m.counts[letter] -= n
		m.size -= n
		if m.counts[letter] == 0 {
			delete(m.counts, letter)
			m.dropFromOrder(letter)
		}
	}
}

// Count reports the multiplicity of letter.
func (m *Multiset) Count(letter rune) int {
	return m.counts[letter]
}

// Size is the total number of letters, counting multiplicity.
func (m *Multiset) Size() int {
	return m.size
}

// IsSubsetOf reports whether every letter of m fits within other.
func (m *Multiset) IsSubsetOf(other *Multiset) bool {
	for letter, n := range m.counts {
		if n > other.counts[letter] {
			return false
		}
	}
	return true
}

// Minus returns a new multiset holding m's letters not covered by other.
func (m *Multiset) Minus(other *Multiset) *Multiset {
	result := NewMultiset()
	for _, letter := range m.order {
		if diff := m.counts[letter] - other.counts[letter]; diff > 0 {
			result.Add(letter, diff)
		}
	}
	return result
}

// Letters expands the multiset into a slice: distinct letters in
// first-insertion order, each repeated by its count.
func (m *Multiset) Letters() []string {
	out := make([]string, 0, m.size)
	for _, letter := range m.order {
		for i := 0; i < m.counts[letter]; i++ {
			out = append(out, string(letter))
		}
	}
	return out
}

func (m *Multiset) dropFromOrder(letter rune) {
	for i, l := range m.order {
		if l == letter {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
