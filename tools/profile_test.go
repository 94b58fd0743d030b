package tools

import (
	"context"
	"testing"

	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
)

func TestProfileHandlerUpdatesField(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	h := NewProfileHandler(store)

	call := core.ToolCall{ID: "c1", Name: NameUpdateProfile, Arguments: map[string]any{
		"field": "name",
		"value": "Alice",
	}}
	msgs, err := h.Execute(ctx, "alice", []core.ToolCall{call})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if msgs[0].Content != "Updated profile name to: Alice" {
		t.Errorf("result = %q", msgs[0].Content)
	}

	item, err := store.Get(ctx, memory.Profile("alice"), memory.ProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item == nil {
		t.Fatal("profile not stored")
	}
	if item.Value["name"] != "Alice" {
		t.Errorf("name = %v", item.Value["name"])
	}
	// All known fields exist even when never set.
	for _, field := range profileFields {
		if _, ok := item.Value[field]; !ok {
			t.Errorf("field %q missing from profile document", field)
		}
	}
}

func TestProfileHandlerPreservesOtherFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	h := NewProfileHandler(store)

	set := func(field, value string) {
		call := core.ToolCall{ID: "c", Name: NameUpdateProfile, Arguments: map[string]any{
			"field": field, "value": value,
		}}
		if _, err := h.Execute(ctx, "alice", []core.ToolCall{call}); err != nil {
			t.Fatalf("Execute(%s): %v", field, err)
		}
	}
	set("name", "Alice")
	set("location", "Oslo")

	item, err := store.Get(ctx, memory.Profile("alice"), memory.ProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item.Value["name"] != "Alice" || item.Value["location"] != "Oslo" {
		t.Errorf("profile = %v", item.Value)
	}
}

func TestProfileHandlerEmptyValueClearsField(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	h := NewProfileHandler(store)

	set := func(value string) string {
		call := core.ToolCall{ID: "c", Name: NameUpdateProfile, Arguments: map[string]any{
			"field": "location", "value": value,
		}}
		msgs, err := h.Execute(ctx, "alice", []core.ToolCall{call})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		return msgs[0].Content
	}
	set("Oslo")
	// Writing an empty value is accepted and clears the field.
	if got := set(""); got != "Updated profile location to: " {
		t.Errorf("result = %q", got)
	}

	item, err := store.Get(ctx, memory.Profile("alice"), memory.ProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item == nil || item.Value["location"] != "" {
		t.Errorf("location = %v, want cleared", item.Value["location"])
	}
}

func TestProfileHandlerUnknownField(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	h := NewProfileHandler(store)

	call := core.ToolCall{ID: "c1", Name: NameUpdateProfile, Arguments: map[string]any{
		"field": "shoe_size",
		"value": "43",
	}}
	msgs, err := h.Execute(ctx, "alice", []core.ToolCall{call})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if msgs[0].Content != "Unknown profile field: shoe_size" {
		t.Errorf("result = %q", msgs[0].Content)
	}

	// The rejected call must not create or touch the profile.
	item, err := store.Get(ctx, memory.Profile("alice"), memory.ProfileKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item != nil {
		t.Errorf("profile should not exist, got %v", item.Value)
	}
}
