package dfamin

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Transition is a labeled edge between two states.
type Transition struct {
	Source string
	Label  string
	Dest   string
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -%s-> %s", t.Source, t.Label, t.Dest)
}

// Definition is the raw, unvalidated description of an automaton. It is the shape
// exchanged with decoders and encoders; New turns it into an Automaton.
type Definition struct {
	Alphabet    []string
	States      []string
	Start       string
	Accepting   []string
	Transitions []Transition
}

// Automaton Represents a deterministic finite automaton over a declared alphabet. States are
// identified by name but stored by index, in declaration order; the alphabet is kept in
// declaration order too and that order drives every deterministic enumeration (signatures,
// transition listings, block naming). An Automaton is immutable: every operation in this
// package returns a new value and accessors return copies.
//
// The transition function may be partial. A missing (state, label) pair is stored as -1 in
// the delta table.
type Automaton struct {
	alphabet []string
	symbols  map[string]int

	states []string
	index  map[string]int

	start int

	isAccept *bitset.BitSet

	// Dense transition table, len(states)*len(alphabet) entries; delta[s*k+j] is the
	// destination of state s on symbol j, or -1.
	delta []int

	numTransitions int
}

// New validates def and builds an Automaton from it. Duplicate states, symbols and
// accepting entries collapse to their first occurrence, and identical duplicate
// transitions collapse to one. Any structural problem is reported as an
// *InvalidAutomatonError.
func New(def Definition) (*Automaton, error) {
	alphabet, symbols := dedupe(def.Alphabet)
	states, index := dedupe(def.States)

	start, ok := index[def.Start]
	if !ok {
		return nil, invalid(ErrCodeUnknownStart, "start state is not a member of the state set", def.Start, "")
	}

	isAccept := bitset.New(uint(len(states)))
	for _, name := range def.Accepting {
		s, ok := index[name]
		if !ok {
			return nil, invalid(ErrCodeUnknownAccepting, "accepting state is not a member of the state set", name, "")
		}
		isAccept.Set(uint(s))
	}

	k := len(alphabet)
	delta := newDelta(len(states), k)
	for _, t := range def.Transitions {
		src, ok := index[t.Source]
		if !ok {
			return nil, invalid(ErrCodeUnknownState, "transition source is not a member of the state set", t.Source, t.Label)
		}
		dst, ok := index[t.Dest]
		if !ok {
			return nil, invalid(ErrCodeUnknownState, "transition destination is not a member of the state set", t.Dest, t.Label)
		}
		j, ok := symbols[t.Label]
		if !ok {
			return nil, invalid(ErrCodeUnknownSymbol, "transition label is not part of the alphabet", t.Source, t.Label)
		}

		switch prev := delta[src*k+j]; {
		case prev == -1:
			delta[src*k+j] = dst
		case prev != dst:
			return nil, invalid(ErrCodeNondeterministic,
				fmt.Sprintf("transitions lead to both %q and %q", states[prev], states[dst]), t.Source, t.Label)
		}
	}

	return newAutomaton(alphabet, states, start, isAccept, delta), nil
}

// newAutomaton assembles an Automaton from already consistent parts. It takes ownership
// of its arguments.
func newAutomaton(alphabet, states []string, start int, isAccept *bitset.BitSet, delta []int) *Automaton {
	a := &Automaton{
		alphabet: alphabet,
		symbols:  indexOf(alphabet),
		states:   states,
		index:    indexOf(states),
		start:    start,
		isAccept: isAccept,
		delta:    delta,
	}
	for _, d := range delta {
		if d >= 0 {
			a.numTransitions++
		}
	}
	return a
}

func newDelta(numStates, numSymbols int) []int {
	delta := make([]int, numStates*numSymbols)
	for i := range delta {
		delta[i] = -1
	}
	return delta
}

func dedupe(values []string) ([]string, map[string]int) {
	out := make([]string, 0, len(values))
	pos := make(map[string]int, len(values))
	for _, v := range values {
		if _, ok := pos[v]; ok {
			continue
		}
		pos[v] = len(out)
		out = append(out, v)
	}
	return out, pos
}

func indexOf(values []string) map[string]int {
	m := make(map[string]int, len(values))
	for i, v := range values {
		m[v] = i
	}
	return m
}

// Alphabet returns the symbols in declaration order.
func (a *Automaton) Alphabet() []string {
	return slices.Clone(a.alphabet)
}

// States returns the state identifiers in declaration order.
func (a *Automaton) States() []string {
	return slices.Clone(a.states)
}

// Start returns the start state.
func (a *Automaton) Start() string {
	return a.states[a.start]
}

// Accepting returns the accepting states in declaration order.
func (a *Automaton) Accepting() []string {
	out := make([]string, 0, a.isAccept.Count())
	for s, ok := a.isAccept.NextSet(0); ok; s, ok = a.isAccept.NextSet(s + 1) {
		out = append(out, a.states[s])
	}
	return out
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state string) bool {
	s, ok := a.index[state]
	return ok && a.isAccept.Test(uint(s))
}

// HasState reports whether state belongs to the automaton.
func (a *Automaton) HasState(state string) bool {
	_, ok := a.index[state]
	return ok
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// NumTransitions How many transitions this automaton has.
func (a *Automaton) NumTransitions() int {
	return a.numTransitions
}

// Transitions returns every transition ordered by source state, then by alphabet order.
func (a *Automaton) Transitions() []Transition {
	k := len(a.alphabet)
	out := make([]Transition, 0, a.numTransitions)
	for s := range a.states {
		for j, label := range a.alphabet {
			if d := a.delta[s*k+j]; d >= 0 {
				out = append(out, Transition{Source: a.states[s], Label: label, Dest: a.states[d]})
			}
		}
	}
	return out
}

// IsTotal reports whether every state has a transition for every symbol.
func (a *Automaton) IsTotal() bool {
	return a.numTransitions == len(a.delta)
}

// Step Performs lookup in transitions. The second result is false when state is unknown
// or has no transition for label.
func (a *Automaton) Step(state, label string) (string, bool) {
	s, ok := a.index[state]
	if !ok {
		return "", false
	}
	j, ok := a.symbols[label]
	if !ok {
		return "", false
	}
	d := a.step(s, j)
	if d < 0 {
		return "", false
	}
	return a.states[d], true
}

func (a *Automaton) step(state, symbol int) int {
	return a.delta[state*len(a.alphabet)+symbol]
}

func (a *Automaton) accepts(state int) bool {
	return a.isAccept.Test(uint(state))
}

// Definition returns the raw description of a, suitable for encoding.
func (a *Automaton) Definition() Definition {
	return Definition{
		Alphabet:    a.Alphabet(),
		States:      a.States(),
		Start:       a.Start(),
		Accepting:   a.Accepting(),
		Transitions: a.Transitions(),
	}
}

func (a *Automaton) String() string {
	return fmt.Sprintf("DFA{states=%d, symbols=%d, transitions=%d, start=%s, accepting=%v}",
		len(a.states), len(a.alphabet), a.numTransitions, a.Start(), a.Accepting())
}
