package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/geange/dfamin"
)

const (
	markStart     = "->"
	markAccepting = "*"
	noTransition  = "-"
)

// Table renders the transition function of a as a table with one row per state and one
// column per symbol. The first column marks the start state with "->" and accepting
// states with "*".
func Table(a *dfamin.Automaton) string {
	var tableBuffer bytes.Buffer

	alphabet := a.Alphabet()
	header := append([]string{"", "State"}, alphabet...)

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, state := range a.States() {
		row := make([]string, 0, len(header))
		row = append(row, marks(a, state), state)
		for _, sym := range alphabet {
			dest, ok := a.Step(state, sym)
			if !ok {
				dest = noTransition
			}
			row = append(row, dest)
		}
		table.Append(row)
	}

	table.SetFooter(footer(a, len(header)))
	table.Render()

	return tableBuffer.String()
}

func marks(a *dfamin.Automaton, state string) string {
	var m strings.Builder
	if state == a.Start() {
		m.WriteString(markStart)
	}
	if a.IsAccept(state) {
		m.WriteString(markAccepting)
	}
	return m.String()
}

func footer(a *dfamin.Automaton, width int) []string {
	row := make([]string, width)
	row[1] = fmt.Sprintf("%d states", a.NumStates())
	if width > 2 {
		row[2] = fmt.Sprintf("%d transitions", a.NumTransitions())
	}
	return row
}
