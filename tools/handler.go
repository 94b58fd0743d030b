package tools

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/maltai/maltai-go/core"
)

// Handler executes all tool calls of one kind from an assistant message.
//
// Execute receives the assistant's full tool-call list, filters to the
// calls matching its own tool name, runs the matching calls
// concurrently, and returns one tool message per matching call, paired
// by position and tagged with that call's id. The join is all-or-
// nothing: the first failing call aborts the whole batch.
//
// Validation problems (missing task, unknown profile field) are not
// errors; they come back as plain-text tool results so the model can
// read the failure and react. Errors are reserved for store failures,
// which abort the turn.
type Handler interface {
	Kind() Kind
	Execute(ctx context.Context, userID string, calls []core.ToolCall) ([]core.Message, error)
}

// filterCalls keeps the calls whose name matches the handler's kind.
func filterCalls(kind Kind, calls []core.ToolCall) []core.ToolCall {
	var matched []core.ToolCall
	for _, call := range calls {
		if KindOf(call.Name) == kind {
			matched = append(matched, call)
		}
	}
	return matched
}

// fanOut runs fn for every call concurrently and pairs the results
// 1:1 with the call list. First failure aborts the join.
func fanOut(ctx context.Context, calls []core.ToolCall, fn func(context.Context, core.ToolCall) (string, error)) ([]core.Message, error) {
	results := make([]string, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			content, err := fn(gctx, call)
			if err != nil {
				return err
			}
			results[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	messages := make([]core.Message, len(calls))
	for i, call := range calls {
		messages[i] = core.NewToolMessage(results[i], call.ID)
	}
	return messages, nil
}
