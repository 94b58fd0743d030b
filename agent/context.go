package agent

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
)

// recentMessageWindow bounds how much of the tail of the transcript
// seeds the memory similarity query.
const recentMessageWindow = 3

// PromptContext is the memory-derived material injected into the
// system prompt each turn.
type PromptContext struct {
	// UserInfo is the relevant-memories block, empty when nothing
	// matched.
	UserInfo string

	// ProfileInfo is the profile document, empty when none stored.
	ProfileInfo string

	// TodoList is the current todos as "- item" lines.
	TodoList string

	// Instructions is the most recently updated instruction.
	Instructions string
}

// Assembler gathers prompt context from the four memory namespaces.
type Assembler struct {
	store memory.Store
}

// NewAssembler creates an assembler over the given store.
func NewAssembler(store memory.Store) *Assembler {
	return &Assembler{store: store}
}

// Assemble retrieves memories, profile, todos, and instructions
// concurrently. The retrievals are independent, so they run in
// parallel; the first failure aborts the whole assembly. A missing
// record is not a failure, it just leaves its section empty.
func (a *Assembler) Assemble(ctx context.Context, userID string, messages []core.Message) (*PromptContext, error) {
	pc := &PromptContext{}
	query := recentQuery(messages)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := a.store.Search(gctx, memory.Memories(userID), query, 10)
		if err != nil {
			return fmt.Errorf("search memories: %w", err)
		}
		pc.UserInfo = formatMemories(items)
		return nil
	})

	g.Go(func() error {
		item, err := a.store.Get(gctx, memory.Profile(userID), memory.ProfileKey)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if item != nil {
			pc.ProfileInfo = item.FormatValue()
		}
		return nil
	})

	g.Go(func() error {
		items, err := a.store.Search(gctx, memory.Todos(userID), "", 10)
		if err != nil {
			return fmt.Errorf("list todos: %w", err)
		}
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = "- " + item.FormatValue()
		}
		pc.TodoList = strings.Join(lines, "\n")
		return nil
	})

	g.Go(func() error {
		items, err := a.store.Search(gctx, memory.Instructions(userID), "", 1)
		if err != nil {
			return fmt.Errorf("load instructions: %w", err)
		}
		if len(items) > 0 {
			pc.Instructions = items[0].FormatValue()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pc, nil
}

// recentQuery joins the last few message contents into the similarity
// query seeding memory retrieval.
func recentQuery(messages []core.Message) string {
	start := len(messages) - recentMessageWindow
	if start < 0 {
		start = 0
	}
	var parts []string
	for _, m := range messages[start:] {
		if m.Content != "" {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// formatMemories renders search hits as "[key]: value (similarity:
// score)" lines inside a <memories> block. Empty results render as
// the empty string so the prompt omits the block entirely.
func formatMemories(items []memory.Item) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("[%s]: %s (similarity: %.4f)", item.Key, item.FormatValue(), item.Score)
	}
	return "\n<memories>\n" + strings.Join(lines, "\n") + "\n</memories>"
}
