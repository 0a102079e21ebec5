// Package render turns automata into text: Graphviz DOT, transition tables, plain
// listings and unified diffs between two automata.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geange/dfamin"
)

// Node fill colors. Accepting wins over start when a state is both.
const (
	colorState     = "lightblue"
	colorStart     = "lightgreen"
	colorAccepting = "lightpink"
)

// DOT renders a as a Graphviz digraph named title. Parallel edges between the same pair
// of states are merged into one edge whose label lists the symbols in alphabet order.
func DOT(a *dfamin.Automaton, title string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "digraph %s {\n", strconv.Quote(title))
	sb.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&sb, "  node [shape=circle, style=filled, fillcolor=%s];\n", colorState)
	sb.WriteString("\n")

	// Invisible start node pointing to the start state.
	sb.WriteString("  __start [shape=point];\n")
	fmt.Fprintf(&sb, "  __start -> %s;\n", strconv.Quote(a.Start()))
	sb.WriteString("\n")

	for _, state := range a.States() {
		id := strconv.Quote(state)
		switch {
		case a.IsAccept(state):
			fmt.Fprintf(&sb, "  %s [shape=doublecircle, fillcolor=%s];\n", id, colorAccepting)
		case state == a.Start():
			fmt.Fprintf(&sb, "  %s [fillcolor=%s];\n", id, colorStart)
		default:
			fmt.Fprintf(&sb, "  %s;\n", id)
		}
	}

	if edges := mergeEdges(a.Transitions()); len(edges) > 0 {
		sb.WriteString("\n")
		for _, e := range edges {
			fmt.Fprintf(&sb, "  %s -> %s [label=%s];\n",
				strconv.Quote(e.source), strconv.Quote(e.dest), strconv.Quote(strings.Join(e.labels, ",")))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

type edge struct {
	source, dest string
	labels       []string
}

// mergeEdges groups transitions by endpoints, in order of first appearance.
func mergeEdges(transitions []dfamin.Transition) []edge {
	type key struct{ source, dest string }

	var edges []edge
	index := make(map[key]int)
	for _, t := range transitions {
		k := key{t.Source, t.Dest}
		i, ok := index[k]
		if !ok {
			i = len(edges)
			index[k] = i
			edges = append(edges, edge{source: t.Source, dest: t.Dest})
		}
		edges[i].labels = append(edges[i].labels, t.Label)
	}
	return edges
}
