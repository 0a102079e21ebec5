package dfamin

import (
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Automata builds common automata over a given alphabet. States are named q0, q1, ...
type Automata struct {
}

func stateName(i int) string {
	return "q" + strconv.Itoa(i)
}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty(alphabet []string) *Automaton {
	symbols, _ := dedupe(alphabet)
	return newAutomaton(symbols, []string{stateName(0)}, 0, bitset.New(1), newDelta(1, len(symbols)))
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString(alphabet []string) *Automaton {
	symbols, _ := dedupe(alphabet)
	isAccept := bitset.New(1)
	isAccept.Set(0)
	return newAutomaton(symbols, []string{stateName(0)}, 0, isAccept, newDelta(1, len(symbols)))
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings over the alphabet.
func (*Automata) MakeAnyString(alphabet []string) *Automaton {
	symbols, _ := dedupe(alphabet)
	isAccept := bitset.New(1)
	isAccept.Set(0)
	delta := make([]int, len(symbols))
	return newAutomaton(symbols, []string{stateName(0)}, 0, isAccept, delta)
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given word. Symbols of
// word missing from alphabet are appended to it.
func (*Automata) MakeString(alphabet []string, word []string) *Automaton {
	symbols, pos := dedupe(append(append([]string(nil), alphabet...), word...))

	n := len(word) + 1
	states := make([]string, n)
	for i := range states {
		states[i] = stateName(i)
	}

	k := len(symbols)
	delta := newDelta(n, k)
	for i, sym := range word {
		delta[i*k+pos[sym]] = i + 1
	}

	isAccept := bitset.New(uint(n))
	isAccept.Set(uint(n - 1))
	return newAutomaton(symbols, states, 0, isAccept, delta)
}
