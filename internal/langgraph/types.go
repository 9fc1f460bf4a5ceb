package langgraph

import (
	"encoding/json"
	"time"
)

// Assistant is a named graph configuration exposed by the server.
type Assistant struct {
	AssistantID string         `json:"assistant_id"`
	GraphID     string         `json:"graph_id"`
	Name        string         `json:"name"`
	Config      map[string]any `json:"config,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Version     int            `json:"version,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DisplayName returns the assistant name, falling back to the graph id.
func (a Assistant) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.GraphID != "" {
		return a.GraphID
	}
	return a.AssistantID
}

// Thread is a server-side conversation context that groups runs.
type Thread struct {
	ThreadID  string         `json:"thread_id"`
	Status    string         `json:"status,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Run is one invocation of an assistant against a thread.
type Run struct {
	RunID       string         `json:"run_id"`
	ThreadID    string         `json:"thread_id"`
	AssistantID string         `json:"assistant_id"`
	Status      string         `json:"status"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AssistantSearchParams filters POST /assistants/search.
type AssistantSearchParams struct {
	GraphID  string         `json:"graph_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Offset   int            `json:"offset"`
}

// ThreadCreateParams is the body of POST /threads.
type ThreadCreateParams struct {
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RunListParams pages GET /threads/{id}/runs.
type RunListParams struct {
	Limit  int
	Offset int
}

// RunStreamParams is the body of POST /threads/{id}/runs/stream.
type RunStreamParams struct {
	AssistantID string         `json:"assistant_id"`
	Input       any            `json:"input,omitempty"`
	StreamMode  []string       `json:"stream_mode,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// StreamPart is one server-sent event from a run stream. Data is the raw
// JSON payload; its shape depends on Event.
type StreamPart struct {
	Event string
	Data  json.RawMessage
}
