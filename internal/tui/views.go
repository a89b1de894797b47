package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/krkonrad/Calculation-data/internal/cli"
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			cli.FormatError(m.err.Error()),
			"",
			cli.SubtleStyle.Render("press any key to quit"),
		)
	}

	switch m.state {
	case StateList:
		return m.list.View()
	case StateReport:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			m.help.View(m.keymap),
		)
	default:
		return cli.FormatInfo("Loading households...")
	}
}
