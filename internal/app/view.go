package app

import (
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), m.chat.View(), m.footer.View())
}
