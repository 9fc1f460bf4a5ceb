package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/zhubert/jockey/internal/agent"
	"github.com/zhubert/jockey/internal/langgraph"
	"github.com/zhubert/jockey/internal/logging"
	"github.com/zhubert/jockey/internal/stream"
)

type fakeAgent struct {
	chunks     []agent.StreamChunk
	busy       bool
	cleared    int
	assistants []langgraph.Assistant
	listErr    error
	gotCtx     context.Context
}

func (f *fakeAgent) Submit(ctx context.Context, text string) (<-chan agent.StreamChunk, bool) {
	if f.busy || strings.TrimSpace(text) == "" {
		return nil, false
	}
	f.gotCtx = ctx
	ch := make(chan agent.StreamChunk, len(f.chunks)+1)
	for _, c := range f.chunks {
		ch <- c
	}
	close(ch)
	return ch, true
}

func (f *fakeAgent) Clear() { f.cleared++ }

func (f *fakeAgent) Assistants(ctx context.Context) ([]langgraph.Assistant, error) {
	return f.assistants, f.listErr
}

func newTestRunner(f *fakeAgent) (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	r := New(f, Options{Out: &buf, HistoryFile: os.DevNull}, logging.Discard())
	return r, &buf
}

func TestAskPrintsCards(t *testing.T) {
	t.Parallel()

	f := &fakeAgent{chunks: []agent.StreamChunk{
		{Type: agent.ChunkAgent, AgentName: "Librarian"},
		{Type: agent.ChunkToolStart, ToolName: "search_index"},
		{Type: agent.ChunkMessage, Message: stream.DisplayMessage{Text: "Found 3 clips", AgentName: "Librarian"}},
		{Type: agent.ChunkDone},
	}}
	r, out := newTestRunner(f)

	if err := r.Ask(context.Background(), "find clips"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	got := out.String()
	for _, want := range []string{"→ Librarian", "⚡ search_index", "[Librarian]\nFound 3 clips"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\033[") {
		t.Error("plain output should not contain ANSI codes")
	}
}

func TestAskReturnsRunError(t *testing.T) {
	t.Parallel()

	boom := errors.New("server unavailable")
	f := &fakeAgent{chunks: []agent.StreamChunk{
		{Type: agent.ChunkError, Err: boom},
		{Type: agent.ChunkDone},
	}}
	r, _ := newTestRunner(f)

	if err := r.Ask(context.Background(), "hi"); !errors.Is(err, boom) {
		t.Errorf("Ask() err = %v, want %v", err, boom)
	}
}

func TestAskRejected(t *testing.T) {
	t.Parallel()

	r, _ := newTestRunner(&fakeAgent{busy: true})
	if err := r.Ask(context.Background(), "hi"); err == nil {
		t.Error("expected error when a run is in progress")
	}

	r, _ = newTestRunner(&fakeAgent{})
	if err := r.Ask(context.Background(), "  "); err == nil {
		t.Error("expected error for blank question")
	}
}

func TestProcessInputCancelOnSignal(t *testing.T) {
	t.Parallel()

	f := &fakeAgent{chunks: []agent.StreamChunk{
		{Type: agent.ChunkError, Err: context.Canceled},
		{Type: agent.ChunkDone},
	}}
	r, _ := newTestRunner(f)

	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	if err := r.processInput("hi", sigCh); err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("processInput: %v", err)
	}
	if f.gotCtx == nil {
		t.Fatal("agent was not called")
	}
	if f.gotCtx.Err() == nil {
		t.Error("run context should be cancelled when processInput returns")
	}
}

func TestSlashCommands(t *testing.T) {
	t.Parallel()

	f := &fakeAgent{assistants: []langgraph.Assistant{{AssistantID: "a-1", GraphID: "supervisor", Name: "Jockey"}}}
	r, out := newTestRunner(f)

	r.handleSlashCommand("/help")
	if !strings.Contains(out.String(), "/assistants") {
		t.Errorf("help output:\n%s", out.String())
	}

	out.Reset()
	r.handleSlashCommand("/assistants")
	if !strings.Contains(out.String(), "a-1") || !strings.Contains(out.String(), "supervisor") {
		t.Errorf("assistants output:\n%s", out.String())
	}

	out.Reset()
	r.handleSlashCommand("/clear")
	if f.cleared != 1 {
		t.Errorf("cleared = %d, want 1", f.cleared)
	}

	out.Reset()
	r.handleSlashCommand("/bogus")
	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Errorf("unknown output:\n%s", out.String())
	}
}

func TestListAssistantsError(t *testing.T) {
	t.Parallel()

	r, out := newTestRunner(&fakeAgent{listErr: errors.New("refused")})
	r.listAssistants(context.Background())
	if !strings.Contains(out.String(), "refused") {
		t.Errorf("output:\n%s", out.String())
	}
}
