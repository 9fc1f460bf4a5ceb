package stream

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SenderAI marks messages produced by the assistant.
const SenderAI = "ai"

// DisplayMessage is a finalized assistant message shown as one card.
type DisplayMessage struct {
	ID        string
	Sender    string
	Text      string
	AgentName string
	// Question is the user input that produced this message.
	Question  string
	CreatedAt time.Time
}

// Transcript is the ordered in-memory list of display messages. It never
// holds two messages with the same text and agent name.
type Transcript struct {
	mu       sync.RWMutex
	messages []DisplayMessage
	entropy  *ulid.MonotonicEntropy
	now      func() time.Time
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	t := time.Now()
	return &Transcript{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0),
		now:     time.Now,
	}
}

// Append adds msg unless a message with the same Text and AgentName is
// already present. It fills in ID, Sender and CreatedAt when empty and
// reports whether the message was added along with the stored copy.
func (t *Transcript) Append(msg DisplayMessage) (DisplayMessage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.messages {
		if existing.Text == msg.Text && existing.AgentName == msg.AgentName {
			return existing, false
		}
	}

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = t.now()
	}
	if msg.ID == "" {
		msg.ID = ulid.MustNew(ulid.Timestamp(msg.CreatedAt), t.entropy).String()
	}
	if msg.Sender == "" {
		msg.Sender = SenderAI
	}

	t.messages = append(t.messages, msg)
	return msg, true
}

// Messages returns a copy of the messages in append order.
func (t *Transcript) Messages() []DisplayMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]DisplayMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = nil
}
