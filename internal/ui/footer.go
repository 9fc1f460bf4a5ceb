package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const flashDuration = 3 * time.Second

// FlashTickMsg signals the flash message should be cleared.
type FlashTickMsg struct{}

// FlashTick returns a command that clears the flash after a delay.
func FlashTick() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return FlashTickMsg{}
	})
}

// Footer renders the bottom bar with keybindings and optional flash messages.
type Footer struct {
	flash      string
	processing bool
}

// NewFooter creates a new footer.
func NewFooter() *Footer {
	return &Footer{}
}

// SetFlash sets a temporary flash message.
func (f *Footer) SetFlash(msg string) {
	f.flash = msg
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flash = ""
}

// SetProcessing switches the key hints between idle and running.
func (f *Footer) SetProcessing(on bool) {
	f.processing = on
}

// View renders the footer as a string.
func (f *Footer) View() string {
	width := GetViewContext().Width()

	var content string
	switch {
	case f.flash != "":
		content = f.flash
	case f.processing:
		content = DimStyle.Render("esc") + FooterStyle.Render(" cancel  ") +
			DimStyle.Render("ctrl+c") + FooterStyle.Render(" quit")
	default:
		content = DimStyle.Render("enter") + FooterStyle.Render(" launch  ") +
			DimStyle.Render("ctrl+l") + FooterStyle.Render(" clear  ") +
			DimStyle.Render("/help") + FooterStyle.Render(" commands  ") +
			DimStyle.Render("ctrl+c") + FooterStyle.Render(" quit")
	}

	padding := width - lipgloss.Width(content)
	if padding > 0 {
		content += lipgloss.NewStyle().Width(padding).Render("")
	}
	return content
}
