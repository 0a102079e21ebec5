package dfamin

// Builder collects states, symbols and transitions incrementally; call Finish to validate
// and obtain the Automaton. The first state created becomes the start state unless
// SetStart says otherwise. Labels used by AddTransition are registered in the alphabet in
// order of first use.
type Builder struct {
	def      Definition
	hasStart bool
	symbols  map[string]struct{}
}

func NewBuilder() *Builder {
	return &Builder{symbols: make(map[string]struct{})}
}

// AddSymbol appends symbols to the alphabet.
func (b *Builder) AddSymbol(symbols ...string) *Builder {
	for _, sym := range symbols {
		if _, ok := b.symbols[sym]; ok {
			continue
		}
		b.symbols[sym] = struct{}{}
		b.def.Alphabet = append(b.def.Alphabet, sym)
	}
	return b
}

// CreateState adds a state.
func (b *Builder) CreateState(name string) *Builder {
	if !b.hasStart {
		b.def.Start = name
		b.hasStart = true
	}
	b.def.States = append(b.def.States, name)
	return b
}

// SetStart marks name as the start state.
func (b *Builder) SetStart(name string) *Builder {
	b.def.Start = name
	b.hasStart = true
	return b
}

// SetAccept Set or clear this state as an accept state.
func (b *Builder) SetAccept(name string, accept bool) *Builder {
	if accept {
		b.def.Accepting = append(b.def.Accepting, name)
		return b
	}
	kept := b.def.Accepting[:0]
	for _, s := range b.def.Accepting {
		if s != name {
			kept = append(kept, s)
		}
	}
	b.def.Accepting = kept
	return b
}

// AddTransition Add a new transition with the specified source, label and dest.
func (b *Builder) AddTransition(source, label, dest string) *Builder {
	b.AddSymbol(label)
	b.def.Transitions = append(b.def.Transitions, Transition{Source: source, Label: label, Dest: dest})
	return b
}

// Finish validates everything added so far. The Builder may keep being used afterwards.
func (b *Builder) Finish() (*Automaton, error) {
	return New(b.def)
}
