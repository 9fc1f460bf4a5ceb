package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/zhubert/jockey/internal/langgraph"
	"github.com/zhubert/jockey/internal/loopdetector"
	"github.com/zhubert/jockey/internal/stream"
)

// ChunkType identifies the kind of stream chunk.
type ChunkType int

const (
	ChunkAssistant ChunkType = iota
	ChunkThread
	ChunkToolStart
	ChunkAgent
	ChunkMessage
	ChunkError
	ChunkDone
)

// StreamChunk is a unit of progress from a run.
type StreamChunk struct {
	Type      ChunkType
	Assistant langgraph.Assistant
	ThreadID  string
	ToolName  string
	AgentName string
	Message   stream.DisplayMessage
	Err       error
}

var (
	// ErrNoAssistants is returned when the server has no assistant to run.
	ErrNoAssistants = errors.New("no assistants available")
	// ErrRoutingLoop is returned when the loop guard aborts a run.
	ErrRoutingLoop = errors.New("routing loop detected")
)

// Orchestrator is the subset of the LangGraph client the agent drives.
type Orchestrator interface {
	SearchAssistants(ctx context.Context, params langgraph.AssistantSearchParams) ([]langgraph.Assistant, error)
	CreateThread(ctx context.Context, params langgraph.ThreadCreateParams) (langgraph.Thread, error)
	ListRuns(ctx context.Context, threadID string, params langgraph.RunListParams) ([]langgraph.Run, error)
	StreamRun(ctx context.Context, threadID, assistantID string, params langgraph.RunStreamParams) (*langgraph.RunStream, error)
}

// Options configures an Agent.
type Options struct {
	// IndexID is prefixed to every question.
	IndexID string
	// Assistant selects an assistant by id, name or graph id. Empty picks the first.
	Assistant string
	// StreamMode is sent with every run. Defaults to messages.
	StreamMode []string
	// LoopGuard bounds supervisor rerouting within a run. Zero disables it.
	LoopGuard loopdetector.Config
	// AbortOnLoop ends the run when the loop guard trips instead of only
	// logging a warning.
	AbortOnLoop bool
}

// Agent accepts questions, runs them against the orchestration service one
// at a time and keeps the resulting messages.
type Agent struct {
	client     Orchestrator
	opts       Options
	transcript *stream.Transcript
	logger     *slog.Logger

	mu         sync.Mutex
	processing bool
	assistant  langgraph.Assistant
}

// New creates an Agent. The client is owned by the caller.
func New(client Orchestrator, opts Options, logger *slog.Logger) *Agent {
	if len(opts.StreamMode) == 0 {
		opts.StreamMode = []string{"messages"}
	}
	return &Agent{
		client:     client,
		opts:       opts,
		transcript: stream.NewTranscript(),
		logger:     logger,
	}
}

// Processing reports whether a run is in flight.
func (a *Agent) Processing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processing
}

// Assistant returns the assistant used by the most recent run.
func (a *Agent) Assistant() langgraph.Assistant {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.assistant
}

// Messages returns the display messages collected so far.
func (a *Agent) Messages() []stream.DisplayMessage {
	return a.transcript.Messages()
}

// Clear empties the message list.
func (a *Agent) Clear() {
	a.transcript.Clear()
}

// Submit starts a run for text. It returns false without contacting the
// server when text is blank or a run is already in flight. Otherwise the
// returned channel emits progress and is closed after a final ChunkDone;
// Processing is false by the time ChunkDone is sent.
func (a *Agent) Submit(ctx context.Context, text string) (<-chan StreamChunk, bool) {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil, false
	}

	a.mu.Lock()
	if a.processing {
		a.mu.Unlock()
		a.logger.Debug("submit ignored, run in progress")
		return nil, false
	}
	a.processing = true
	a.mu.Unlock()

	ch := make(chan StreamChunk, 64)

	go func() {
		defer close(ch)
		defer func() {
			a.mu.Lock()
			a.processing = false
			a.mu.Unlock()
			a.emit(ctx, ch, StreamChunk{Type: ChunkDone})
		}()

		if err := a.run(ctx, question, ch); err != nil {
			if errors.Is(err, context.Canceled) {
				a.logger.Info("run cancelled")
			} else {
				a.logger.Error("run failed", "error", err)
			}
			a.emit(ctx, ch, StreamChunk{Type: ChunkError, Err: err})
		}
	}()

	return ch, true
}

// Assistants lists the assistants available on the server.
func (a *Agent) Assistants(ctx context.Context) ([]langgraph.Assistant, error) {
	return a.client.SearchAssistants(ctx, langgraph.AssistantSearchParams{Limit: 100})
}

func (a *Agent) run(ctx context.Context, question string, ch chan<- StreamChunk) error {
	a.logger.Info("run started", "question_length", len(question))
	defer a.logger.Info("run ended")

	limit := 10
	if a.opts.Assistant != "" {
		limit = 100
	}
	assistants, err := a.client.SearchAssistants(ctx, langgraph.AssistantSearchParams{Limit: limit})
	if err != nil {
		return err
	}
	assistant, err := pickAssistant(assistants, a.opts.Assistant)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.assistant = assistant
	a.mu.Unlock()
	a.logger.Info("assistant selected", "assistant_id", assistant.AssistantID, "name", assistant.DisplayName())
	a.emit(ctx, ch, StreamChunk{Type: ChunkAssistant, Assistant: assistant})

	thread, err := a.client.CreateThread(ctx, langgraph.ThreadCreateParams{})
	if err != nil {
		return err
	}
	a.emit(ctx, ch, StreamChunk{Type: ChunkThread, ThreadID: thread.ThreadID})

	runs, err := a.client.ListRuns(ctx, thread.ThreadID, langgraph.RunListParams{Limit: 10})
	if err != nil {
		return err
	}
	a.logger.Debug("existing runs", "thread_id", thread.ThreadID, "count", len(runs))

	s, err := a.client.StreamRun(ctx, thread.ThreadID, assistant.AssistantID, langgraph.RunStreamParams{
		Input:      BuildInput(a.opts.IndexID, question),
		StreamMode: a.opts.StreamMode,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	reducer := stream.NewReducer(question, a.transcript, a.logger)
	guard := loopdetector.New(a.opts.LoopGuard)
	warned := false
	for s.Next() {
		part := s.Current()
		ev, err := stream.Decode(part)
		if err != nil {
			a.logger.Warn("skipping undecodable event", "event", part.Event, "error", err)
			continue
		}

		switch e := ev.(type) {
		case *stream.ErrorEvent:
			return e
		case *stream.ToolStartEvent:
			guard.RecordToolStart(e.Name, e.Input)
			a.emit(ctx, ch, StreamChunk{Type: ChunkToolStart, ToolName: e.Name})
		}

		before := reducer.AgentName()
		added := reducer.Apply(ev)
		if after := reducer.AgentName(); after != before {
			guard.RecordAgent(after)
			a.emit(ctx, ch, StreamChunk{Type: ChunkAgent, AgentName: after})
		}

		if det := guard.Check(); det.Detected && !warned {
			warned = true
			a.logger.Warn("routing loop detected", "reason", det.Reason, "hops", guard.Hops())
			if a.opts.AbortOnLoop {
				return fmt.Errorf("%w: %s", ErrRoutingLoop, det.Reason)
			}
		}
		for _, msg := range added {
			a.emit(ctx, ch, StreamChunk{Type: ChunkMessage, Message: msg})
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := s.Err(); err != nil {
		return err
	}
	return nil
}

// emit delivers a chunk unless ctx is done. It never blocks a cancelled run.
func (a *Agent) emit(ctx context.Context, ch chan<- StreamChunk, chunk StreamChunk) {
	select {
	case ch <- chunk:
	case <-ctx.Done():
	}
}

// pickAssistant returns the assistant matching want by id, name or graph
// id, or the first one when want is empty.
func pickAssistant(assistants []langgraph.Assistant, want string) (langgraph.Assistant, error) {
	if len(assistants) == 0 {
		return langgraph.Assistant{}, ErrNoAssistants
	}
	if want == "" {
		return assistants[0], nil
	}
	for _, a := range assistants {
		if a.AssistantID == want || strings.EqualFold(a.Name, want) || a.GraphID == want {
			return a, nil
		}
	}
	return langgraph.Assistant{}, fmt.Errorf("assistant %q not found among %d assistants", want, len(assistants))
}
