package ui

import (
	"strings"
	"testing"

	"github.com/zhubert/jockey/internal/stream"
)

func TestRenderCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		msg       stream.DisplayMessage
		wantLabel string
	}{
		{
			name:      "named agent",
			msg:       stream.DisplayMessage{Text: "Hello", AgentName: "Librarian"},
			wantLabel: "Librarian",
		},
		{
			name: "no agent yet",
			msg:  stream.DisplayMessage{Text: "Hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := RenderCard(tt.msg, 60)
			if tt.wantLabel != "" && !strings.Contains(out, tt.wantLabel) {
				t.Errorf("card missing label %q:\n%s", tt.wantLabel, out)
			}
			if tt.wantLabel == "" && strings.Contains(out, "Jockey") {
				t.Errorf("card should have no label:\n%s", out)
			}
			if !strings.Contains(out, "Hello") {
				t.Errorf("card missing body:\n%s", out)
			}
		})
	}
}

func TestPlainCard(t *testing.T) {
	t.Parallel()

	got := PlainCard(stream.DisplayMessage{Text: "Found 3 clips", AgentName: "Librarian"})
	want := "[Librarian]\nFound 3 clips\n"
	if got != want {
		t.Errorf("PlainCard() = %q, want %q", got, want)
	}
}

func TestPlainCardWithoutAgent(t *testing.T) {
	t.Parallel()

	if got := PlainCard(stream.DisplayMessage{Text: "Found 3 clips"}); got != "Found 3 clips\n" {
		t.Errorf("PlainCard() = %q, want body only", got)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	t.Parallel()

	if got := RenderMarkdown("   ", 40); got != "" {
		t.Errorf("RenderMarkdown(blank) = %q, want empty", got)
	}
}

func TestChatProcessing(t *testing.T) {
	t.Parallel()

	c := NewChat()
	c.SetSize(80, 20)

	if c.ButtonLabel() != LaunchLabel {
		t.Errorf("ButtonLabel() = %q", c.ButtonLabel())
	}
	if cmd := c.SetProcessing(true); cmd == nil {
		t.Error("SetProcessing(true) should start the spinner")
	}
	if !c.Processing() || c.ButtonLabel() != ProcessingLabel {
		t.Errorf("processing = %v, label = %q", c.Processing(), c.ButtonLabel())
	}
	c.SetProcessing(false)
	if c.Processing() {
		t.Error("Processing() should be false")
	}

	c.AddQuestion("where is the goal?")
	c.AddCard(stream.DisplayMessage{Text: "At 12:04", AgentName: "Librarian"})
	c.AddErrorMessage("boom")
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestLabelCodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no blocks", in: "plain text", want: "plain text"},
		{name: "unlabeled", in: "```\nx := 1\n```", want: "```text\nx := 1\n```"},
		{name: "labeled kept", in: "```go\nx := 1\n```", want: "```go\nx := 1\n```"},
		{
			name: "mixed",
			in:   "```\na\n```\n\n```json\n{}\n```",
			want: "```text\na\n```\n\n```json\n{}\n```",
		},
	}

	for _, tt := range tests {
		if got := labelCodeBlocks(tt.in); got != tt.want {
			t.Errorf("%s: labelCodeBlocks() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
