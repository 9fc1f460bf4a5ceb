package langgraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	"go.opentelemetry.io/otel/trace"

	"github.com/zhubert/jockey/internal/tracing"
)

// ListRuns lists the runs on a thread.
func (c *Client) ListRuns(ctx context.Context, threadID string, params RunListParams) ([]Run, error) {
	if threadID == "" {
		return nil, errors.New("listing runs: empty thread id")
	}

	ctx, span := tracing.StartSpan(ctx, "langgraph.runs.list", tracing.String("langgraph.thread_id", threadID))
	defer span.End()

	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	path := "/threads/" + url.PathEscape(threadID) + "/runs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var runs []Run
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &runs); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	span.SetAttributes(tracing.Int("langgraph.runs", len(runs)))
	tracing.SetOK(span)
	return runs, nil
}

// StreamRun starts a run of assistantID on threadID and returns its event
// stream. The caller must Close the stream. Cancelling ctx aborts it.
func (c *Client) StreamRun(ctx context.Context, threadID, assistantID string, params RunStreamParams) (*RunStream, error) {
	if threadID == "" {
		return nil, errors.New("streaming run: empty thread id")
	}
	if assistantID == "" {
		return nil, errors.New("streaming run: empty assistant id")
	}
	params.AssistantID = assistantID

	ctx, span := tracing.StartSpan(ctx, "langgraph.runs.stream",
		tracing.String("langgraph.thread_id", threadID),
		tracing.String("langgraph.assistant_id", assistantID),
	)

	path := "/threads/" + url.PathEscape(threadID) + "/runs/stream"
	resp, err := c.do(ctx, http.MethodPost, path, params, "text/event-stream")
	if err != nil {
		tracing.RecordError(span, err)
		span.End()
		return nil, fmt.Errorf("streaming run: %w", err)
	}

	return &RunStream{decoder: ssestream.NewDecoder(resp), span: span}, nil
}

// RunStream iterates the server-sent events of a run:
//
//	for s.Next() {
//		part := s.Current()
//	}
//	if err := s.Err(); err != nil { ... }
type RunStream struct {
	decoder ssestream.Decoder
	span    trace.Span
	cur     StreamPart
	count   int
	err     error
	closed  bool
}

// NewRunStream reads an SSE body that was captured or produced elsewhere.
func NewRunStream(body io.ReadCloser) *RunStream {
	resp := &http.Response{
		Header: http.Header{"Content-Type": []string{"text/event-stream"}},
		Body:   body,
	}
	return &RunStream{decoder: ssestream.NewDecoder(resp)}
}

// Next advances to the next event. It returns false at the end of the
// stream or on error.
func (s *RunStream) Next() bool {
	if s.err != nil || s.closed || s.decoder == nil {
		return false
	}
	for s.decoder.Next() {
		ev := s.decoder.Event()
		data := bytes.TrimSpace(ev.Data)
		if ev.Type == "" && len(data) == 0 {
			continue
		}
		name := ev.Type
		if name == "" {
			name = "message"
		}
		s.cur = StreamPart{Event: name, Data: bytes.Clone(data)}
		s.count++
		return true
	}
	if err := s.decoder.Err(); err != nil {
		s.err = fmt.Errorf("reading event stream: %w", err)
	}
	return false
}

// Current returns the event read by the last call to Next.
func (s *RunStream) Current() StreamPart {
	return s.cur
}

// Err returns the error that stopped iteration, if any.
func (s *RunStream) Err() error {
	return s.err
}

// Close releases the response body and ends the trace span.
func (s *RunStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.decoder != nil {
		err = s.decoder.Close()
	}
	if s.span != nil {
		s.span.SetAttributes(tracing.Int("langgraph.events", s.count))
		if s.err != nil {
			tracing.RecordError(s.span, s.err)
		} else {
			tracing.SetOK(s.span)
		}
		s.span.End()
	}
	return err
}
