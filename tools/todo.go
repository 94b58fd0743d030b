package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
)

// TodoHandler appends AddTodo calls to the user's task list. Every
// call creates a fresh item under a generated key, so adding the same
// task twice yields two entries.
type TodoHandler struct {
	store memory.Store
	now   func() time.Time
}

// NewTodoHandler creates a handler writing to the given store.
func NewTodoHandler(store memory.Store) *TodoHandler {
	return &TodoHandler{store: store, now: time.Now}
}

// Kind reports the tool this handler serves.
func (h *TodoHandler) Kind() Kind { return KindAddTodo }

// Execute stores every matching call as a new todo and returns one
// tool message per call.
func (h *TodoHandler) Execute(ctx context.Context, userID string, calls []core.ToolCall) ([]core.Message, error) {
	matched := filterCalls(KindAddTodo, calls)
	ns := memory.Todos(userID)
	return fanOut(ctx, matched, func(ctx context.Context, call core.ToolCall) (string, error) {
		task := call.StringArg("task")
		if task == "" {
			return "Error: task is required", nil
		}

		value := map[string]any{
			"task":   task,
			"status": "not started",
		}
		if minutes, ok := call.IntArg("time_to_complete"); ok {
			if minutes < 0 {
				return "Error: time_to_complete must not be negative", nil
			}
			value["time_to_complete"] = minutes
		}
		if deadline := call.StringArg("deadline"); deadline != "" {
			if !validDeadline(deadline) {
				return fmt.Sprintf("Error: invalid deadline %q, use RFC 3339 or YYYY-MM-DD", deadline), nil
			}
			value["deadline"] = deadline
		}

		key := todoKey(h.now())
		if err := h.store.Put(ctx, ns, key, value); err != nil {
			return "", fmt.Errorf("store todo %q: %w", key, err)
		}
		return fmt.Sprintf("Added todo: %s", task), nil
	})
}

func validDeadline(deadline string) bool {
	if _, err := time.Parse(time.RFC3339, deadline); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", deadline)
	return err == nil
}

// todoKey builds a unique todo id. The timestamp keeps keys roughly
// sortable; the uuid fragment keeps same-instant adds distinct.
func todoKey(t time.Time) string {
	return fmt.Sprintf("todo_%d_%s", t.UnixNano(), uuid.New().String()[:8])
}
