// Package stream turns the events of a LangGraph run into display messages.
package stream

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/zhubert/jockey/internal/langgraph"
)

// Wire names of the events the reducer understands.
const (
	KindMetadata        = "metadata"
	KindToolStart       = "on_tool_start"
	KindMessagePartial  = "messages/partial"
	KindMessageComplete = "messages/complete"
	KindError           = "error"
	KindEnd             = "end"
)

// Event is a decoded stream event. The set of implementations is closed;
// unrecognized kinds decode to *UnknownEvent.
type Event interface {
	Kind() string
	event()
}

// MetadataEvent carries run metadata sent at the start of a stream.
type MetadataEvent struct {
	RunID string
	Raw   json.RawMessage
}

// ToolStartEvent reports that a tool started running on the server.
type ToolStartEvent struct {
	Name  string
	// Input is the raw tool input, empty when the server sent none.
	Input string
	Raw   json.RawMessage
}

// MessageEvent carries message items of a messages/* event. Items are kept
// raw and decoded one at a time so a bad item does not spoil the rest.
type MessageEvent struct {
	Complete bool
	Items    []json.RawMessage
}

// ErrorEvent is a server-side failure reported inside the stream.
type ErrorEvent struct {
	Name    string
	Message string
}

// EndEvent marks the end of the run.
type EndEvent struct{}

// UnknownEvent is any kind this package does not model.
type UnknownEvent struct {
	Name  string
	Raw  json.RawMessage
}

func (*MetadataEvent) Kind() string  { return KindMetadata }
func (*ToolStartEvent) Kind() string { return KindToolStart }
func (e *MessageEvent) Kind() string {
	if e.Complete {
		return KindMessageComplete
	}
	return KindMessagePartial
}
func (*ErrorEvent) Kind() string     { return KindError }
func (*EndEvent) Kind() string       { return KindEnd }
func (e *UnknownEvent) Kind() string { return e.Name }

func (*MetadataEvent) event()  {}
func (*ToolStartEvent) event() {}
func (*MessageEvent) event()   {}
func (*ErrorEvent) event()     {}
func (*EndEvent) event()       {}
func (*UnknownEvent) event()   {}

func (e *ErrorEvent) Error() string {
	switch {
	case e.Name != "" && e.Message != "":
		return fmt.Sprintf("run failed: %s: %s", e.Name, e.Message)
	case e.Message != "":
		return "run failed: " + e.Message
	case e.Name != "":
		return "run failed: " + e.Name
	default:
		return "run failed"
	}
}

// Decode maps a wire part to its typed event. It returns an error only when
// a known kind carries a payload of the wrong shape.
func Decode(part langgraph.StreamPart) (Event, error) {
	data := part.Data
	switch part.Event {
	case KindMetadata:
		if len(data) > 0 && !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("decoding %s event: invalid JSON", part.Event)
		}
		return &MetadataEvent{RunID: gjson.GetBytes(data, "run_id").String(), Raw: data}, nil

	case KindToolStart:
		if len(data) > 0 && !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("decoding %s event: invalid JSON", part.Event)
		}
		return &ToolStartEvent{
			Name:  gjson.GetBytes(data, "name").String(),
			Input: gjson.GetBytes(data, "data.input").Raw,
			Raw:   data,
		}, nil

	case KindMessagePartial, KindMessageComplete:
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("decoding %s event: invalid JSON", part.Event)
		}
		list := gjson.ParseBytes(data)
		if !list.IsArray() {
			return nil, fmt.Errorf("decoding %s event: expected a list of messages, got %s", part.Event, list.Type)
		}
		ev := &MessageEvent{Complete: part.Event == KindMessageComplete}
		list.ForEach(func(_, item gjson.Result) bool {
			ev.Items = append(ev.Items, json.RawMessage(item.Raw))
			return true
		})
		return ev, nil

	case KindError:
		res := gjson.ParseBytes(data)
		if res.Type == gjson.String {
			return &ErrorEvent{Message: res.String()}, nil
		}
		return &ErrorEvent{
			Name:    res.Get("error").String(),
			Message: res.Get("message").String(),
		}, nil

	case KindEnd:
		return &EndEvent{}, nil

	default:
		return &UnknownEvent{Name: part.Event, Raw: data}, nil
	}
}
