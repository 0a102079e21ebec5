package dfamin

import (
	"golang.org/x/sync/errgroup"
)

// partition is an arena of disjoint blocks plus the index of the block holding each state.
// Members of every block are kept in ascending state order, so blocks[i][0] is the
// smallest member and serves as the block's representative.
//
// When the automaton has undefined transitions the partition also holds an implicit
// non-accepting sink with index len(states) that loops on every symbol. Undefined
// transitions lead there, so the block of the sink is the "no destination" component of
// a signature. It sorts after every real state and is never a representative of a block
// that has real members.
type partition struct {
	blocks  [][]int
	blockOf []int
	sink    int
}

// initialPartition splits states into accepting and non-accepting blocks, in that order.
// An empty side is left out. The sink, if any, is non-accepting.
func initialPartition(a *Automaton) *partition {
	n := len(a.states)
	sink := -1
	if !a.IsTotal() {
		sink = n
	}

	var accepting, rest []int
	for s := range a.states {
		if a.accepts(s) {
			accepting = append(accepting, s)
		} else {
			rest = append(rest, s)
		}
	}
	size := n
	if sink >= 0 {
		rest = append(rest, sink)
		size++
	}

	p := &partition{blockOf: make([]int, size), sink: sink}
	for _, members := range [][]int{accepting, rest} {
		if len(members) > 0 {
			p.add(members)
		}
	}
	return p
}

func (p *partition) add(members []int) {
	idx := len(p.blocks)
	p.blocks = append(p.blocks, members)
	for _, s := range members {
		p.blockOf[s] = idx
	}
}

// isSinkOnly reports whether block b holds nothing but the sink.
func (p *partition) isSinkOnly(b int) bool {
	return p.sink >= 0 && p.blocks[b][0] == p.sink
}

// realBlocks counts the blocks holding at least one state of the automaton.
func (p *partition) realBlocks() int {
	n := len(p.blocks)
	if p.sink >= 0 && p.isSinkOnly(p.blockOf[p.sink]) {
		n--
	}
	return n
}

// target returns the destination of s on symbol j, with the sink standing in for an
// undefined transition.
func (p *partition) target(a *Automaton, s, j int) int {
	if s == p.sink {
		return p.sink
	}
	if d := a.step(s, j); d >= 0 {
		return d
	}
	return p.sink
}

// signature computes the signature of state s under p.
func (p *partition) signature(a *Automaton, s int) signature {
	sig := make(signature, len(a.alphabet))
	for j := range sig {
		sig[j] = int32(p.blockOf[p.target(a, s, j)])
	}
	return sig
}

// split groups the members of one block by signature. Groups come out in the order their
// first member appears, and members keep their relative order.
func (p *partition) split(a *Automaton, members []int) [][]int {
	if len(members) == 1 {
		return [][]int{members}
	}

	table := newSignatureTable(withTableCapacity(len(members)))
	var groups [][]int
	for _, s := range members {
		g, found := table.lookupOrInsert(p.signature(a, s), len(groups))
		if !found {
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], s)
	}
	return groups
}

// refine performs one refinement round and returns the next partition. Up to parallelism
// blocks are split concurrently; the result does not depend on scheduling.
func (p *partition) refine(a *Automaton, parallelism int) *partition {
	splits := make([][][]int, len(p.blocks))

	if parallelism > 1 && len(p.blocks) > 1 {
		var group errgroup.Group
		group.SetLimit(parallelism)
		for i, members := range p.blocks {
			group.Go(func() error {
				splits[i] = p.split(a, members)
				return nil
			})
		}
		_ = group.Wait()
	} else {
		for i, members := range p.blocks {
			splits[i] = p.split(a, members)
		}
	}

	next := &partition{
		blocks:  make([][]int, 0, len(p.blocks)),
		blockOf: make([]int, len(p.blockOf)),
	}
	for _, groups := range splits {
		for _, members := range groups {
			next.add(members)
		}
	}
	return next
}
