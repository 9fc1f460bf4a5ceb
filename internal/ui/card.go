package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zhubert/jockey/internal/stream"
)

// RenderCard renders one finalized message as a bordered card: the agent
// name on top and the markdown body below. The name line is omitted until
// an agent is known.
func RenderCard(msg stream.DisplayMessage, width int) string {
	inner := width - CardStyle.GetHorizontalFrameSize()
	if inner < minWrapWidth {
		inner = minWrapWidth
	}

	var b strings.Builder
	if msg.AgentName != "" {
		b.WriteString(AgentNameStyle.Render(msg.AgentName))
		b.WriteString("\n")
	}
	b.WriteString(RenderMarkdown(msg.Text, inner))

	return CardStyle.Width(inner).Render(b.String())
}

// PlainCard renders a message without styling, for pipes and logs.
func PlainCard(msg stream.DisplayMessage) string {
	if msg.AgentName == "" {
		return msg.Text + "\n"
	}
	return fmt.Sprintf("[%s]\n%s\n", msg.AgentName, msg.Text)
}

// RenderQuestion formats the question that started a run.
func RenderQuestion(text string) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render("You")
	return label + "\n" + text + "\n"
}

// RenderErrorMessage formats an error message for the chat area.
func RenderErrorMessage(text string) string {
	label := ErrorStyle.Bold(true).Render("Error")
	return label + "\n" + ErrorStyle.Render(text) + "\n"
}

// RenderSystemMessage formats command output and notices.
func RenderSystemMessage(text string) string {
	return DimStyle.Render(text) + "\n"
}

// RenderToolStart formats a tool invocation reported by the server.
func RenderToolStart(name string) string {
	return ToolNameStyle.Render("⚡ "+name) + "\n"
}
