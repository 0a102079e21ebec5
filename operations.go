package dfamin

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// IsEmpty
// Returns true if the given automaton accepts no strings.
func IsEmpty(a *Automaton) bool {
	if a.accepts(a.start) {
		// Common case: it accepts the empty string
		return false
	}

	k := len(a.alphabet)
	seen := reachable(len(a.states), a.start, func(s int, visit func(int)) {
		for j := 0; j < k; j++ {
			if d := a.delta[s*k+j]; d >= 0 {
				visit(d)
			}
		}
	})
	return !seen.Intersection(a.isAccept).Any()
}

// Totalize returns an automaton whose transition function is total: every missing
// transition is redirected to a new non-accepting state named sink that loops on every
// symbol. An automaton that is already total is returned as is. Totalize fails with
// ErrCodeDuplicateState when sink is already a state of a.
func Totalize(a *Automaton, sink string) (*Automaton, error) {
	if a.IsTotal() {
		return a, nil
	}
	if a.HasState(sink) {
		return nil, invalid(ErrCodeDuplicateState, "sink state already exists", sink, "")
	}

	n, k := len(a.states), len(a.alphabet)
	deadState := n

	delta := newDelta(n+1, k)
	copy(delta, a.delta)
	for i := range delta {
		if delta[i] == -1 {
			delta[i] = deadState
		}
	}

	isAccept := bitset.New(uint(n + 1))
	for s, ok := a.isAccept.NextSet(0); ok; s, ok = a.isAccept.NextSet(s + 1) {
		isAccept.Set(s)
	}

	states := append(a.States(), sink)
	return newAutomaton(a.Alphabet(), states, a.start, isAccept, delta), nil
}

// Equivalent reports whether a and b accept the same language. Symbols missing from one
// alphabet behave like missing transitions there. When the languages differ, the second
// result is a shortest word accepted by exactly one of them.
func Equivalent(a, b *Automaton) (bool, []string) {
	alphabet := a.Alphabet()
	for _, sym := range b.alphabet {
		if _, ok := a.symbols[sym]; !ok {
			alphabet = append(alphabet, sym)
		}
	}

	// Pair states are shifted by one so that 0 stands for the implicit dead state.
	width := len(b.states) + 1
	pairOf := func(sa, sb int) int {
		return (sa+1)*width + (sb + 1)
	}
	stepIn := func(x *Automaton, s int, label string) int {
		if s < 0 {
			return -1
		}
		j, ok := x.symbols[label]
		if !ok {
			return -1
		}
		return x.step(s, j)
	}
	acceptIn := func(x *Automaton, s int) bool {
		return s >= 0 && x.accepts(s)
	}

	// Only pairs reached from the start pair are recorded, keyed by pair id.
	type visit struct{ parent, via int }
	visited := make(map[int]visit)

	type pair struct{ sa, sb int }
	workList := []pair{{a.start, b.start}}
	visited[pairOf(a.start, b.start)] = visit{parent: -1}

	for len(workList) > 0 {
		cur := workList[0]
		workList = workList[1:]
		id := pairOf(cur.sa, cur.sb)

		if acceptIn(a, cur.sa) != acceptIn(b, cur.sb) {
			var word []string
			for p := id; visited[p].parent != -1; p = visited[p].parent {
				word = append(word, alphabet[visited[p].via])
			}
			slices.Reverse(word)
			if word == nil {
				word = []string{}
			}
			return false, word
		}

		for j, label := range alphabet {
			next := pair{stepIn(a, cur.sa, label), stepIn(b, cur.sb, label)}
			if next.sa < 0 && next.sb < 0 {
				// Both dead: nothing is accepted from here on.
				continue
			}
			nid := pairOf(next.sa, next.sb)
			if _, ok := visited[nid]; ok {
				continue
			}
			visited[nid] = visit{parent: id, via: j}
			workList = append(workList, next)
		}
	}
	return true, nil
}

// withStart returns a copy of a that starts in state s. Used to compare the languages
// of two states.
func (a *Automaton) withStart(s int) *Automaton {
	return &Automaton{
		alphabet:       a.alphabet,
		symbols:        a.symbols,
		states:         a.states,
		index:          a.index,
		start:          s,
		isAccept:       a.isAccept,
		delta:          a.delta,
		numTransitions: a.numTransitions,
	}
}

// Distinguishable reports whether states p and q of a accept different languages. Unknown
// states are never distinguishable.
func Distinguishable(a *Automaton, p, q string) bool {
	sp, ok := a.index[p]
	if !ok {
		return false
	}
	sq, ok := a.index[q]
	if !ok {
		return false
	}
	same, _ := Equivalent(a.withStart(sp), a.withStart(sq))
	return !same
}
