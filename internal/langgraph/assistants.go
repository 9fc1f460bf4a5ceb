package langgraph

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zhubert/jockey/internal/tracing"
)

// SearchAssistants lists assistants matching params.
func (c *Client) SearchAssistants(ctx context.Context, params AssistantSearchParams) ([]Assistant, error) {
	ctx, span := tracing.StartSpan(ctx, "langgraph.assistants.search",
		tracing.String("langgraph.graph_id", params.GraphID),
		tracing.Int("langgraph.limit", params.Limit),
	)
	defer span.End()

	var assistants []Assistant
	if err := c.doJSON(ctx, http.MethodPost, "/assistants/search", params, &assistants); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("searching assistants: %w", err)
	}

	span.SetAttributes(tracing.Int("langgraph.assistants", len(assistants)))
	tracing.SetOK(span)
	return assistants, nil
}
