package tools

import (
	"context"
	"fmt"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
)

// InstructionsHandler applies UpdateInstructions calls. Instructions
// are keyed by category, so a later update to the same category
// replaces the earlier one.
type InstructionsHandler struct {
	store memory.Store
}

// NewInstructionsHandler creates a handler writing to the given store.
func NewInstructionsHandler(store memory.Store) *InstructionsHandler {
	return &InstructionsHandler{store: store}
}

// Kind reports the tool this handler serves.
func (h *InstructionsHandler) Kind() Kind { return KindUpdateInstructions }

// Execute stores every matching call's instruction under its category
// and returns one tool message per call.
func (h *InstructionsHandler) Execute(ctx context.Context, userID string, calls []core.ToolCall) ([]core.Message, error) {
	matched := filterCalls(KindUpdateInstructions, calls)
	ns := memory.Instructions(userID)
	return fanOut(ctx, matched, func(ctx context.Context, call core.ToolCall) (string, error) {
		category := call.StringArg("category")
		if category == "" {
			return "Error: category is required", nil
		}
		instruction := call.StringArg("instruction")
		if instruction == "" {
			return "Error: instruction is required", nil
		}

		if err := h.store.Put(ctx, ns, category, map[string]any{"instruction": instruction}); err != nil {
			return "", fmt.Errorf("store instructions %q: %w", category, err)
		}
		return fmt.Sprintf("Updated %s instructions: %s", category, instruction), nil
	})
}
