package stream

import (
	"log/slog"

	"github.com/tidwall/gjson"
)

// finishReasonStop marks a message fragment as final.
const finishReasonStop = "stop"

// Reducer folds the events of one run into a transcript. A Reducer is
// scoped to a single question; the agent name it tracks does not carry over
// to the next run.
type Reducer struct {
	question   string
	transcript *Transcript
	logger     *slog.Logger

	agentName string
	runID     string
}

// NewReducer creates a reducer that appends to transcript on behalf of question.
func NewReducer(question string, transcript *Transcript, logger *slog.Logger) *Reducer {
	return &Reducer{
		question:   question,
		transcript: transcript,
		logger:     logger,
	}
}

// AgentName returns the most recent next_worker seen in this run.
func (r *Reducer) AgentName() string {
	return r.agentName
}

// RunID returns the run id reported by the metadata event, if any.
func (r *Reducer) RunID() string {
	return r.runID
}

// Apply processes one event and returns the messages it appended.
func (r *Reducer) Apply(ev Event) []DisplayMessage {
	switch e := ev.(type) {
	case *MetadataEvent:
		r.runID = e.RunID
		r.logger.Debug("run metadata", "run_id", e.RunID)
		return nil

	case *ToolStartEvent:
		r.logger.Debug("tool started", "tool", e.Name)
		return nil

	case *MessageEvent:
		var added []DisplayMessage
		for i, raw := range e.Items {
			if msg, ok := r.applyItem(i, gjson.ParseBytes(raw), raw); ok {
				added = append(added, msg)
			}
		}
		return added

	default:
		r.logger.Debug("ignoring stream event", "event", ev.Kind())
		return nil
	}
}

func (r *Reducer) applyItem(index int, item gjson.Result, raw []byte) (DisplayMessage, bool) {
	if !gjson.ValidBytes(raw) || !item.IsObject() {
		r.logger.Warn("skipping malformed message item", "index", index, "raw", truncate(string(raw), 200))
		return DisplayMessage{}, false
	}

	if isUserItem(item) {
		r.logger.Debug("human message", "content", truncate(contentText(item.Get("content")), 200))
		return DisplayMessage{}, false
	}

	content := contentText(item.Get("content"))

	if name := agentNameFromItem(item); name != "" {
		if name != r.agentName {
			r.logger.Debug("agent changed", "from", r.agentName, "to", name)
		}
		r.agentName = name
	}

	finishReason := "N/A"
	if fr := item.Get("response_metadata.finish_reason"); fr.Type == gjson.String {
		finishReason = fr.String()
	}
	if finishReason != finishReasonStop {
		return DisplayMessage{}, false
	}

	msg, added := r.transcript.Append(DisplayMessage{
		Sender:    SenderAI,
		Text:      content,
		AgentName: r.agentName,
		Question:  r.question,
	})
	if !added {
		r.logger.Debug("duplicate message dropped", "agent", r.agentName)
		return DisplayMessage{}, false
	}
	r.logger.Info("message finalized", "agent", r.agentName, "id", msg.ID, "length", len(content))
	return msg, true
}

// isUserItem reports whether a message item came from the user.
func isUserItem(item gjson.Result) bool {
	if item.Get("role").String() == "user" {
		return true
	}
	return item.Get("type").String() == "human"
}

// contentText flattens message content. Content is either a string or a
// list of blocks, of which only text blocks are kept.
func contentText(content gjson.Result) string {
	switch {
	case content.Type == gjson.String:
		return content.String()
	case content.IsArray():
		var text string
		content.ForEach(func(_, block gjson.Result) bool {
			switch {
			case block.Type == gjson.String:
				text += block.String()
			case block.Get("type").String() == "text":
				text += block.Get("text").String()
			}
			return true
		})
		return text
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
