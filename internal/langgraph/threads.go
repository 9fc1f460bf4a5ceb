package langgraph

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zhubert/jockey/internal/tracing"
)

// CreateThread creates an empty thread.
func (c *Client) CreateThread(ctx context.Context, params ThreadCreateParams) (Thread, error) {
	ctx, span := tracing.StartSpan(ctx, "langgraph.threads.create")
	defer span.End()

	var thread Thread
	if err := c.doJSON(ctx, http.MethodPost, "/threads", params, &thread); err != nil {
		tracing.RecordError(span, err)
		return Thread{}, fmt.Errorf("creating thread: %w", err)
	}
	if thread.ThreadID == "" {
		err := errors.New("creating thread: response has no thread_id")
		tracing.RecordError(span, err)
		return Thread{}, err
	}

	span.SetAttributes(tracing.String("langgraph.thread_id", thread.ThreadID))
	tracing.SetOK(span)
	return thread, nil
}
