package dfamin

// Run reports whether a accepts word, a sequence of alphabet symbols. A symbol outside the
// alphabet or a missing transition rejects the word.
func Run(a *Automaton, word []string) bool {
	state := a.start
	for _, label := range word {
		j, ok := a.symbols[label]
		if !ok {
			return false
		}
		state = a.step(state, j)
		if state == -1 {
			return false
		}
	}
	return a.accepts(state)
}

// RunString is Run over single-character symbols: every rune of s is one symbol.
func RunString(a *Automaton, s string) bool {
	word := make([]string, 0, len(s))
	for _, r := range s {
		word = append(word, string(r))
	}
	return Run(a, word)
}
