// Package view shows an automaton and its minimized form in the terminal, one at a time,
// with a key to toggle between them.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/render"
)

// Display selects which automaton is on screen.
type Display int

// Display values. The viewer starts on ShowingOriginal.
const (
	ShowingOriginal Display = iota
	ShowingMinimized
)

// Toggle returns the other display.
func (d Display) Toggle() Display {
	if d == ShowingOriginal {
		return ShowingMinimized
	}
	return ShowingOriginal
}

func (d Display) String() string {
	if d == ShowingMinimized {
		return "Minimized DFA"
	}
	return "Original DFA"
}

type keyMap struct {
	Toggle key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle}, {k.Help, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("t", "tab", "enter"),
			key.WithHelp("t/tab", "toggle original/minimized"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	originalTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	minimizedTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	legendStyle         = lipgloss.NewStyle().Faint(true)
	frameStyle          = lipgloss.NewStyle().Padding(0, 1)
)

// Model is the bubbletea model of the viewer.
type Model struct {
	original  *dfamin.Automaton
	minimized *dfamin.Automaton
	tables    [2]string

	display  Display
	keys     keyMap
	help     help.Model
	quitting bool
}

// New returns a viewer showing original first.
func New(original, minimized *dfamin.Automaton) Model {
	return Model{
		original:  original,
		minimized: minimized,
		tables:    [2]string{render.Table(original), render.Table(minimized)},
		display:   ShowingOriginal,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// Display reports what is on screen.
func (m Model) Display() Display {
	return m.display
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// Input that arrives faster than it is read, pasted text included, comes in
		// as a single message carrying several runes.
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
			for _, r := range msg.Runes {
				var cmd tea.Cmd
				m, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: msg.Alt})
				if cmd != nil {
					return m, cmd
				}
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.display = m.display.Toggle()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) current() *dfamin.Automaton {
	if m.display == ShowingMinimized {
		return m.minimized
	}
	return m.original
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	a := m.current()
	titleStyle := originalTitleStyle
	if m.display == ShowingMinimized {
		titleStyle = minimizedTitleStyle
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d states, %d transitions)",
		m.display, a.NumStates(), a.NumTransitions())))
	b.WriteString("\n\n")
	b.WriteString(m.tables[m.display])
	b.WriteString("\n")
	b.WriteString(legendStyle.Render("-> start state   * accepting state"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return frameStyle.Render(b.String())
}

// Run starts the viewer on in and out and blocks until the user quits or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, original, minimized *dfamin.Automaton) error {
	program := tea.NewProgram(New(original, minimized),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// Plain renders both automata one after the other, for output that is not a terminal.
func Plain(original, minimized *dfamin.Automaton) string {
	var b strings.Builder
	for _, d := range []Display{ShowingOriginal, ShowingMinimized} {
		a := original
		if d == ShowingMinimized {
			a = minimized
		}
		fmt.Fprintf(&b, "%s (%d states, %d transitions)\n\n", d, a.NumStates(), a.NumTransitions())
		b.WriteString(render.Table(a))
		b.WriteString("\n")
	}
	return b.String()
}
