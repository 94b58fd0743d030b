package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
)

// MemoryHandler persists upsert_memory calls into the memories
// namespace. Each call stores one fact; a call that reuses a key
// overwrites the stored fact.
type MemoryHandler struct {
	store memory.Store
}

// NewMemoryHandler creates a handler writing to the given store.
func NewMemoryHandler(store memory.Store) *MemoryHandler {
	return &MemoryHandler{store: store}
}

// Kind reports the tool this handler serves.
func (h *MemoryHandler) Kind() Kind { return KindStoreMemory }

// Execute stores every matching call's fact and returns one tool
// message per call confirming the stored key.
func (h *MemoryHandler) Execute(ctx context.Context, userID string, calls []core.ToolCall) ([]core.Message, error) {
	matched := filterCalls(KindStoreMemory, calls)
	ns := memory.Memories(userID)
	return fanOut(ctx, matched, func(ctx context.Context, call core.ToolCall) (string, error) {
		value := call.StringArg("value")
		if value == "" {
			return "Error: memory value is required", nil
		}
		key := call.StringArg("key")
		if key == "" {
			key = uuid.New().String()
		}
		if err := h.store.Put(ctx, ns, key, map[string]any{"value": value}); err != nil {
			return "", fmt.Errorf("store memory %q: %w", key, err)
		}
		return fmt.Sprintf("Stored memory %s", key), nil
	})
}
