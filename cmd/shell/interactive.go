package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/embedkit/hostbind/shell"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxScrollback = 12

type interactiveModel struct {
	sh         *shell.Shell
	input      textinput.Model
	scrollback []string
}

func newInteractiveModel(sh *shell.Shell) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "new counter c1"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return &interactiveModel{
		sh:    sh,
		input: ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			if strings.TrimSpace(line) == "" {
				return m, nil
			}

			m.append("> " + line)
			out, err := m.sh.Eval(line)
			if err != nil {
				m.append(errorStyle.Render(err.Error()))
			} else if out != "" {
				m.append(resultStyle.Render(out))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) append(line string) {
	m.scrollback = append(m.scrollback, line)
	if len(m.scrollback) > maxScrollback {
		m.scrollback = m.scrollback[len(m.scrollback)-maxScrollback:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hostbind shell"))
	b.WriteString("\n\n")

	b.WriteString("Instances:\n")
	names := m.sh.Registry().Names()
	if len(names) == 0 {
		b.WriteString(helpStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, name := range names {
		qt, err := m.sh.Registry().GetType(name)
		if err != nil {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			nameStyle.Render(name),
			typeStyle.Render(qt.String())))
	}
	b.WriteString("\n")

	for _, line := range m.scrollback {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("new <type> [name] • delete <name> • type <name> • ls • esc quit"))

	return b.String()
}

func runInteractive(sh *shell.Shell) error {
	p := tea.NewProgram(newInteractiveModel(sh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
