package render

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/geange/dfamin"
)

// Listing renders a as plain text, one fact per line, in a stable order suitable for
// diffing.
func Listing(a *dfamin.Automaton) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "alphabet: %s\n", strings.Join(a.Alphabet(), " "))
	fmt.Fprintf(&sb, "states: %s\n", strings.Join(a.States(), " "))
	fmt.Fprintf(&sb, "start: %s\n", a.Start())
	fmt.Fprintf(&sb, "accepting: %s\n", strings.Join(a.Accepting(), " "))
	for _, t := range a.Transitions() {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Diff returns a unified diff from the listing of original to the listing of minimized.
// The result is empty when both listings are identical.
func Diff(original, minimized *dfamin.Automaton) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        listingLines(original),
		B:        listingLines(minimized),
		FromFile: "original",
		ToFile:   "minimized",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff automata: %w", err)
	}
	return text, nil
}

// listingLines splits the listing of a into newline-terminated lines. SplitLines would
// otherwise add an empty trailing line.
func listingLines(a *dfamin.Automaton) []string {
	return difflib.SplitLines(strings.TrimSuffix(Listing(a), "\n"))
}
