package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zhubert/jockey/internal/ui"
)

const assistantsTimeout = 15 * time.Second

// handleSlashCommand processes slash commands and returns an appropriate tea.Cmd.
func (m *Model) handleSlashCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	switch cmd := strings.ToLower(parts[0]); cmd {
	case "/help", "/h", "/?":
		m.chat.AddSystemMessage(HelpText)
		return nil
	case "/assistants", "/a":
		m.chat.AddSystemMessage("Fetching assistants...")
		return m.fetchAssistants()
	case "/clear":
		m.agent.Clear()
		m.chat.Clear()
		return nil
	default:
		m.chat.AddSystemMessage(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
		return nil
	}
}

// HelpText lists the slash commands.
const HelpText = `Available commands:
  /assistants, /a   - List assistants on the server
  /clear            - Clear the message list
  /help, /h, /?     - Show this help message`

func (m *Model) fetchAssistants() tea.Cmd {
	ag := m.agent
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistantsTimeout)
		defer cancel()
		list, err := ag.Assistants(ctx)
		return AssistantsMsg{Assistants: list, Err: err}
	}
}

func (m *Model) showAssistants(msg AssistantsMsg) {
	if msg.Err != nil {
		m.chat.AddErrorMessage(fmt.Sprintf("listing assistants: %v", msg.Err))
		return
	}
	if len(msg.Assistants) == 0 {
		m.chat.AddSystemMessage("No assistants found.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Assistants:\n")
	for _, a := range msg.Assistants {
		sb.WriteString(fmt.Sprintf("  %s  %s (%s)\n", a.AssistantID, a.DisplayName(), a.GraphID))
	}
	m.chat.AddSystemMessage(strings.TrimRight(sb.String(), "\n"))
	m.footer.SetFlash(ui.SuccessStyle.Render(fmt.Sprintf("%d assistants", len(msg.Assistants))))
}
