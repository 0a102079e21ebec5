package dfamin

import (
	"fmt"
	"slices"
	"strings"
)

// Namer derives the identifier of a minimized state from the identifiers of the original
// states it merges. members is sorted and never empty. A Namer must be deterministic.
type Namer func(members []string) string

// ConcatNamer concatenates the sorted member identifiers, so a block that merges nothing
// keeps its original name.
func ConcatNamer(members []string) string {
	return strings.Join(members, "")
}

// SetNamer renders members as a brace-delimited, comma-separated set.
func SetNamer(members []string) string {
	return "{" + strings.Join(members, ",") + "}"
}

// nameBlocks names every block with namer. Names that collide are re-rendered with
// SetNamer; anything still colliding gets a numeric suffix.
func nameBlocks(a *Automaton, blocks [][]int, namer Namer) []string {
	members := make([][]string, len(blocks))
	names := make([]string, len(blocks))
	counts := make(map[string]int, len(blocks))
	for i, block := range blocks {
		m := make([]string, len(block))
		for x, s := range block {
			m[x] = a.states[s]
		}
		slices.Sort(m)
		members[i] = m
		names[i] = namer(m)
		counts[names[i]]++
	}

	for i, name := range names {
		if counts[name] > 1 {
			names[i] = SetNamer(members[i])
		}
	}

	used := make(map[string]struct{}, len(names))
	for i, name := range names {
		candidate := name
		for n := 1; ; n++ {
			if _, taken := used[candidate]; !taken {
				break
			}
			candidate = fmt.Sprintf("%s#%d", name, n)
		}
		used[candidate] = struct{}{}
		names[i] = candidate
	}
	return names
}
