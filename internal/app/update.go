package app

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zhubert/jockey/internal/agent"
	"github.com/zhubert/jockey/internal/ui"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		ui.GetViewContext().UpdateTerminalSize(msg.Width, msg.Height)
		m.chat.SetSize(msg.Width, max(msg.Height-ui.HeaderHeight-ui.FooterHeight, 1+ui.InputHeight))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelRun()
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.streamCancel != nil {
				m.logger.Info("run cancelled by user")
				m.cancelRun()
			}
			return m, nil
		case "ctrl+l":
			m.agent.Clear()
			m.chat.Clear()
			m.footer.SetFlash(ui.SuccessStyle.Render("Cleared"))
			return m, ui.FlashTick()
		case "enter":
			return m, m.handleEnter()
		}

	case StreamChunkMsg:
		if msg.Source != m.streamCh {
			m.logger.Debug("dropping chunk from a finished run", "type", int(msg.Chunk.Type))
			return m, nil
		}
		return m, m.handleChunk(msg.Chunk)

	case AssistantsMsg:
		m.showAssistants(msg)
		return m, ui.FlashTick()

	case ui.FlashTickMsg:
		m.footer.ClearFlash()
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *Model) handleEnter() tea.Cmd {
	text := strings.TrimSpace(m.chat.InputValue())
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, "/") {
		m.chat.ResetInput()
		return m.handleSlashCommand(text)
	}
	return m.startRun(text)
}

// startRun submits text. A rejected submit leaves the input untouched.
func (m *Model) startRun(text string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	ch, ok := m.agent.Submit(ctx, text)
	if !ok {
		cancel()
		if m.agent.Processing() {
			m.footer.SetFlash(ui.DimStyle.Render("A run is already in progress"))
			return ui.FlashTick()
		}
		return nil
	}

	m.streamCh = ch
	m.streamCancel = cancel
	m.chat.ResetInput()
	m.chat.AddQuestion(text)
	m.footer.SetProcessing(true)
	return tea.Batch(m.chat.SetProcessing(true), listenForChunks(ch))
}

func (m *Model) handleChunk(chunk agent.StreamChunk) tea.Cmd {
	if m.streamCh == nil {
		return nil
	}

	switch chunk.Type {
	case agent.ChunkAssistant:
		m.header.SetAssistant(chunk.Assistant.DisplayName())
		m.chat.SetStatus("Connecting")
	case agent.ChunkThread:
		m.logger.Debug("thread created", "thread_id", chunk.ThreadID)
		m.chat.SetStatus("Thinking")
	case agent.ChunkToolStart:
		m.chat.AddToolStart(chunk.ToolName)
	case agent.ChunkAgent:
		m.header.SetAgent(chunk.AgentName)
		m.chat.SetStatus(chunk.AgentName + " is working")
	case agent.ChunkMessage:
		m.chat.AddCard(chunk.Message)
	case agent.ChunkError:
		if errors.Is(chunk.Err, context.Canceled) {
			m.chat.AddSystemMessage("Cancelled.")
		} else {
			m.chat.AddErrorMessage(chunk.Err.Error())
		}
	case agent.ChunkDone:
		m.finishRun()
		return nil
	}

	return listenForChunks(m.streamCh)
}

func (m *Model) finishRun() {
	m.cancelRun()
	m.streamCh = nil
	m.chat.SetProcessing(false)
	m.footer.SetProcessing(false)
}
