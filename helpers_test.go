package dfamin

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

var defaultAutomata = &Automata{}

// words enumerates every word over alphabet of length up to maxLen, shortest first.
func words(alphabet []string, maxLen int) [][]string {
	out := [][]string{{}}
	frontier := [][]string{{}}
	for n := 1; n <= maxLen; n++ {
		var next [][]string
		for _, w := range frontier {
			for _, sym := range alphabet {
				ext := make([]string, len(w)+1)
				copy(ext, w)
				ext[len(w)] = sym
				next = append(next, ext)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// randomAutomaton draws an automaton with n states over k symbols. With probability
// holes/10 a transition is left undefined.
func randomAutomaton(t *testing.T, r *rand.Rand, n, k, holes int) *Automaton {
	t.Helper()

	b := NewBuilder()
	for j := 0; j < k; j++ {
		b.AddSymbol(string(rune('a' + j)))
	}
	for i := 0; i < n; i++ {
		b.CreateState("s" + strconv.Itoa(i))
	}
	for i := 0; i < n; i++ {
		if r.IntN(3) == 0 {
			b.SetAccept("s"+strconv.Itoa(i), true)
		}
		for j := 0; j < k; j++ {
			if r.IntN(10) < holes {
				continue
			}
			b.AddTransition("s"+strconv.Itoa(i), string(rune('a'+j)), "s"+strconv.Itoa(r.IntN(n)))
		}
	}

	a, err := b.Finish()
	require.NoError(t, err)
	return a
}

// exampleAutomaton is the four state automaton over {a,b} accepting in q3.
func exampleAutomaton(t *testing.T) *Automaton {
	t.Helper()

	a, err := New(Definition{
		Alphabet:  []string{"a", "b"},
		States:    []string{"q0", "q1", "q2", "q3"},
		Start:     "q0",
		Accepting: []string{"q3"},
		Transitions: []Transition{
			{"q0", "a", "q1"}, {"q0", "b", "q2"},
			{"q1", "a", "q3"}, {"q1", "b", "q2"},
			{"q2", "a", "q1"}, {"q2", "b", "q3"},
			{"q3", "a", "q3"}, {"q3", "b", "q3"},
		},
	})
	require.NoError(t, err)
	return a
}

// redundantAutomaton accepts words over {0,1} that end in 1, with two interchangeable
// copies of each state plus an unreachable one.
func redundantAutomaton(t *testing.T) *Automaton {
	t.Helper()

	a, err := NewBuilder().
		AddSymbol("0", "1").
		CreateState("A").CreateState("B").CreateState("C").CreateState("D").CreateState("E").
		SetAccept("C", true).SetAccept("D", true).
		AddTransition("A", "0", "B").AddTransition("A", "1", "C").
		AddTransition("B", "0", "A").AddTransition("B", "1", "D").
		AddTransition("C", "0", "B").AddTransition("C", "1", "D").
		AddTransition("D", "0", "A").AddTransition("D", "1", "C").
		AddTransition("E", "0", "A").AddTransition("E", "1", "E").
		Finish()
	require.NoError(t, err)
	return a
}
