package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zhubert/jockey/internal/agent"
)

// listenForChunks returns a command that reads from the agent's stream channel
// and converts each chunk into a bubbletea message.
func listenForChunks(ch <-chan agent.StreamChunk) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return StreamChunkMsg{Chunk: agent.StreamChunk{Type: agent.ChunkDone}, Source: ch}
		}
		return StreamChunkMsg{Chunk: chunk, Source: ch}
	}
}
