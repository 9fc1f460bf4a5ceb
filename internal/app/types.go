package app

import (
	"github.com/zhubert/jockey/internal/agent"
	"github.com/zhubert/jockey/internal/langgraph"
)

// StreamChunkMsg wraps a chunk from the agent stream.
type StreamChunkMsg struct {
	Chunk agent.StreamChunk
	// Source is the run channel the chunk was read from.
	Source <-chan agent.StreamChunk
}

// AssistantsMsg carries the result of the /assistants command.
type AssistantsMsg struct {
	Assistants []langgraph.Assistant
	Err        error
}
