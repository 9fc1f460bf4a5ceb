package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zhubert/jockey/internal/agent"
	"github.com/zhubert/jockey/internal/langgraph"
	"github.com/zhubert/jockey/internal/stream"
	"github.com/zhubert/jockey/internal/ui"
)

// AgentInterface defines what the app needs from an agent.
type AgentInterface interface {
	Submit(ctx context.Context, text string) (<-chan agent.StreamChunk, bool)
	Processing() bool
	Messages() []stream.DisplayMessage
	Clear()
	Assistants(ctx context.Context) ([]langgraph.Assistant, error)
}

// Model is the top-level bubbletea model for the jockey TUI.
type Model struct {
	agent  AgentInterface
	logger *slog.Logger
	header *ui.Header
	footer *ui.Footer
	chat   *ui.Chat

	width  int
	height int

	// streamCh is the current run's chunk channel.
	streamCh <-chan agent.StreamChunk
	// streamCancel cancels the current run.
	streamCancel context.CancelFunc

	quitting bool
}

// New creates the root app model.
func New(ag AgentInterface, server string, logger *slog.Logger) *Model {
	chat := ui.NewChat()
	chat.AddSystemMessage("Ask a question and press enter. Type /help for commands.")

	return &Model{
		agent:  ag,
		logger: logger,
		header: ui.NewHeader(server),
		footer: ui.NewFooter(),
		chat:   chat,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.chat.Focus()
}

// Run starts the TUI and blocks until it exits.
func Run(m *Model) error {
	defer m.cancelRun()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) cancelRun() {
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
}
