package stream

import (
	"fmt"
	"sync"
	"testing"
)

func TestTranscriptAppend(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	first, ok := tr.Append(DisplayMessage{Text: "hello", AgentName: "Planner", Question: "q1"})
	if !ok {
		t.Fatal("first append should succeed")
	}
	if first.ID == "" || first.CreatedAt.IsZero() || first.Sender != SenderAI {
		t.Errorf("defaults not filled: %+v", first)
	}

	dup, ok := tr.Append(DisplayMessage{Text: "hello", AgentName: "Planner", Question: "q2"})
	if ok {
		t.Error("duplicate (text, agent) should be rejected")
	}
	if dup.ID != first.ID || dup.Question != "q1" {
		t.Errorf("duplicate append should return the existing message, got %+v", dup)
	}

	if _, ok := tr.Append(DisplayMessage{Text: "hello", AgentName: "Editor"}); !ok {
		t.Error("same text with a different agent should be accepted")
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestTranscriptIDsAreOrdered(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	var prev string
	for i := 0; i < 50; i++ {
		msg, _ := tr.Append(DisplayMessage{Text: fmt.Sprintf("m%d", i)})
		if prev != "" && msg.ID <= prev {
			t.Fatalf("ID %s not greater than previous %s", msg.ID, prev)
		}
		prev = msg.ID
	}
}

func TestTranscriptMessagesIsCopy(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(DisplayMessage{Text: "a"})
	msgs := tr.Messages()
	msgs[0].Text = "changed"

	if tr.Messages()[0].Text != "a" {
		t.Error("Messages() should return a copy")
	}
}

func TestTranscriptClear(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	tr.Append(DisplayMessage{Text: "a"})
	tr.Clear()
	if tr.Len() != 0 {
		t.Errorf("Len() after Clear = %d", tr.Len())
	}
	if _, ok := tr.Append(DisplayMessage{Text: "a"}); !ok {
		t.Error("append after Clear should succeed")
	}
}

func TestTranscriptConcurrentAppend(t *testing.T) {
	t.Parallel()

	tr := NewTranscript()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				tr.Append(DisplayMessage{Text: fmt.Sprintf("m%d", j)})
				_ = tr.Messages()
			}
		}()
	}
	wg.Wait()

	if tr.Len() != 25 {
		t.Errorf("Len() = %d, want 25 unique messages", tr.Len())
	}
}
