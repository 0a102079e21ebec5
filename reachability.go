package dfamin

import (
	"github.com/bits-and-blooms/bitset"
)

// Prune returns the states reachable from start, in their original order, together with
// the transitions whose endpoints are both reachable, in their original order.
//
// A state is reachable iff it is start or can be reached from start by following
// transitions. The result always contains start; a lone start state with no transitions is
// a valid singleton result. Prune fails with an *InvalidAutomatonError when start or a
// transition endpoint is not a member of states.
func Prune(states []string, start string, transitions []Transition) ([]string, []Transition, error) {
	names, index := dedupe(states)
	s0, ok := index[start]
	if !ok {
		return nil, nil, invalid(ErrCodeUnknownStart, "start state is not a member of the state set", start, "")
	}

	succ := make([][]int, len(names))
	for _, t := range transitions {
		src, ok := index[t.Source]
		if !ok {
			return nil, nil, invalid(ErrCodeUnknownState, "transition source is not a member of the state set", t.Source, t.Label)
		}
		dst, ok := index[t.Dest]
		if !ok {
			return nil, nil, invalid(ErrCodeUnknownState, "transition destination is not a member of the state set", t.Dest, t.Label)
		}
		succ[src] = append(succ[src], dst)
	}

	seen := reachable(len(names), s0, func(s int, visit func(int)) {
		for _, d := range succ[s] {
			visit(d)
		}
	})

	keptStates := make([]string, 0, seen.Count())
	for s, ok := seen.NextSet(0); ok; s, ok = seen.NextSet(s + 1) {
		keptStates = append(keptStates, names[s])
	}

	keptTransitions := make([]Transition, 0, len(transitions))
	for _, t := range transitions {
		if seen.Test(uint(index[t.Source])) && seen.Test(uint(index[t.Dest])) {
			keptTransitions = append(keptTransitions, t)
		}
	}

	return keptStates, keptTransitions, nil
}

// PruneReachable returns a new automaton restricted to the states reachable from the start
// state. Alphabet, state order and accept flags of the surviving states are preserved.
func PruneReachable(a *Automaton) *Automaton {
	k := len(a.alphabet)
	seen := reachable(len(a.states), a.start, func(s int, visit func(int)) {
		for j := 0; j < k; j++ {
			if d := a.delta[s*k+j]; d >= 0 {
				visit(d)
			}
		}
	})

	// Map old state numbers to new ones; -1 marks a dropped state.
	mp := make([]int, len(a.states))
	states := make([]string, 0, seen.Count())
	for s := range a.states {
		if seen.Test(uint(s)) {
			mp[s] = len(states)
			states = append(states, a.states[s])
		} else {
			mp[s] = -1
		}
	}

	isAccept := bitset.New(uint(len(states)))
	delta := newDelta(len(states), k)
	for s := range a.states {
		if mp[s] < 0 {
			continue
		}
		if a.accepts(s) {
			isAccept.Set(uint(mp[s]))
		}
		for j := 0; j < k; j++ {
			// A reachable state's successors are reachable, so mp[d] is never -1 here.
			if d := a.delta[s*k+j]; d >= 0 {
				delta[mp[s]*k+j] = mp[d]
			}
		}
	}

	return newAutomaton(a.Alphabet(), states, mp[a.start], isAccept, delta)
}

// reachable runs a breadth-first search from start over n states. succ calls visit for
// every successor of a state.
func reachable(n, start int, succ func(s int, visit func(int))) *bitset.BitSet {
	seen := bitset.New(uint(n))
	workList := make([]int, 0, n)
	workList = append(workList, start)
	seen.Set(uint(start))

	visit := func(d int) {
		if !seen.Test(uint(d)) {
			seen.Set(uint(d))
			workList = append(workList, d)
		}
	}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		succ(s, visit)
	}
	return seen
}
