package dfamin

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Stats describes one refinement run.
type Stats struct {
	// States is the number of states entering refinement, after pruning.
	States int
	// InitialBlocks is 1 or 2 depending on whether both accepting and non-accepting
	// states exist.
	InitialBlocks int
	// Blocks is the number of states of the minimized automaton.
	Blocks int
	// Rounds counts refinement rounds including the final one that changed nothing.
	// It never exceeds States.
	Rounds int
}

type minimizeOptions struct {
	parallelism int
	logger      *slog.Logger
	stats       *Stats
	namer       Namer
}

// Option configures Minimize and Refine.
type Option func(*minimizeOptions)

// WithParallelism splits up to n blocks concurrently in each round. Values below 2 keep
// refinement on the calling goroutine.
func WithParallelism(n int) Option {
	return func(o *minimizeOptions) {
		o.parallelism = n
	}
}

// WithLogger logs one debug record per refinement round.
func WithLogger(logger *slog.Logger) Option {
	return func(o *minimizeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStats fills s when refinement completes.
func WithStats(s *Stats) Option {
	return func(o *minimizeOptions) {
		o.stats = s
	}
}

// WithNamer replaces ConcatNamer as the block naming scheme.
func WithNamer(namer Namer) Option {
	return func(o *minimizeOptions) {
		if namer != nil {
			o.namer = namer
		}
	}
}

func newMinimizeOptions(opts ...Option) *minimizeOptions {
	o := &minimizeOptions{
		parallelism: 1,
		logger:      slog.New(slog.DiscardHandler),
		namer:       ConcatNamer,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Minimize
// Minimizes the given automaton: unreachable states are pruned first, then the remaining
// states are merged into the coarsest partition that refines the accepting/non-accepting
// split and is stable under the transition function. The result accepts the same
// language with the fewest possible states. a is left untouched.
func Minimize(a *Automaton, opts ...Option) *Automaton {
	return refine(PruneReachable(a), newMinimizeOptions(opts...))
}

// Refine merges equivalent states of an already pruned automaton given as raw parts and
// returns the minimized automaton in the same shape. start is only remapped; it takes no
// part in refinement. Refine fails with an *InvalidAutomatonError when start, an accepting
// state or a transition endpoint is not in states, when a label is not in alphabet, or
// when the transitions are not deterministic.
func Refine(alphabet, states []string, start string, accepting []string, transitions []Transition, opts ...Option) (Definition, error) {
	a, err := New(Definition{
		Alphabet:    alphabet,
		States:      states,
		Start:       start,
		Accepting:   accepting,
		Transitions: transitions,
	})
	if err != nil {
		return Definition{}, err
	}
	return refine(a, newMinimizeOptions(opts...)).Definition(), nil
}

// refine computes the fixed point of Moore's partition refinement. Blocks only ever
// split, so a round that leaves the block count unchanged has reached the fixed point.
func refine(a *Automaton, o *minimizeOptions) *Automaton {
	p := initialPartition(a)
	initialBlocks := p.realBlocks()

	rounds := 0
	for {
		next := p.refine(a, o.parallelism)
		rounds++
		o.logger.Debug("refinement round",
			slog.Int("round", rounds),
			slog.Int("blocks", len(next.blocks)),
			slog.Int("states", len(a.states)))

		if len(next.blocks) == len(p.blocks) {
			break
		}
		p = next
	}

	if o.stats != nil {
		*o.stats = Stats{
			States:        len(a.states),
			InitialBlocks: initialBlocks,
			Blocks:        p.realBlocks(),
			Rounds:        rounds,
		}
	}

	return quotient(a, p, o.namer)
}

// quotient builds the automaton whose states are the blocks of p holding real states.
// Blocks are ordered by their smallest member. Stability of p guarantees that every member
// of a block reaches the same block on each symbol, so a block takes, per symbol, the
// first defined transition among its members. A symbol on which every member is undefined
// stays undefined, which leaves a block holding only the sink unreferenced and dropped.
func quotient(a *Automaton, p *partition, namer Namer) *Automaton {
	order := make([]int, 0, len(p.blocks))
	for b := range p.blocks {
		if !p.isSinkOnly(b) {
			order = append(order, b)
		}
	}
	slices.SortFunc(order, func(x, y int) int {
		return cmp.Compare(p.blocks[x][0], p.blocks[y][0])
	})

	rank := make([]int, len(p.blocks))
	blocks := make([][]int, len(order))
	for r, b := range order {
		rank[b] = r
		blocks[r] = p.blocks[b]
		if last := len(blocks[r]) - 1; blocks[r][last] == p.sink {
			blocks[r] = blocks[r][:last]
		}
	}

	k := len(a.alphabet)
	isAccept := bitset.New(uint(len(blocks)))
	delta := newDelta(len(blocks), k)
	for r, members := range blocks {
		if a.accepts(members[0]) {
			isAccept.Set(uint(r))
		}
		for j := 0; j < k; j++ {
			for _, s := range members {
				if d := a.step(s, j); d >= 0 {
					delta[r*k+j] = rank[p.blockOf[d]]
					break
				}
			}
		}
	}

	names := nameBlocks(a, blocks, namer)
	return newAutomaton(a.Alphabet(), names, rank[p.blockOf[a.start]], isAccept, delta)
}
