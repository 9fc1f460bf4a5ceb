package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Header renders the top bar: app name, server and current routing.
type Header struct {
	server    string
	assistant string
	agent     string
}

// NewHeader creates a header for the given server URL.
func NewHeader(server string) *Header {
	return &Header{server: server}
}

// SetAssistant records the assistant serving the current run.
func (h *Header) SetAssistant(name string) {
	h.assistant = name
}

// SetAgent records the worker the supervisor routed to.
func (h *Header) SetAgent(name string) {
	h.agent = name
}

// View renders the header as a string.
func (h *Header) View() string {
	width := GetViewContext().Width()

	line := HeaderStyle.Render("jockey") + DimStyle.Render(" "+h.server)
	if h.assistant != "" {
		line += DimStyle.Render("  assistant ") + h.assistant
	}
	if h.agent != "" {
		line += DimStyle.Render("  agent ") + AgentNameStyle.Render(h.agent)
	}

	padding := width - lipgloss.Width(line)
	if padding > 0 {
		line += lipgloss.NewStyle().Width(padding).Render("")
	}
	return line
}
