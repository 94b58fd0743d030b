package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/maltai/maltai-go/memory"
	"github.com/maltai/maltai-go/memory/embedder/mock"
)

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New(mock.New())
	defer store.Close()
	ns := memory.Memories("alice")

	if err := store.Put(ctx, ns, "k1", map[string]any{"value": "first"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	item, err := store.Get(ctx, ns, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item == nil || item.Value["value"] != "first" {
		t.Fatalf("Get = %+v", item)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	// Absent key is not an error.
	missing, err := store.Get(ctx, ns, "nope")
	if err != nil || missing != nil {
		t.Errorf("Get absent = (%+v, %v), want (nil, nil)", missing, err)
	}

	if err := store.Delete(ctx, ns, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := store.Get(ctx, ns, "k1")
	if err != nil || gone != nil {
		t.Errorf("Get after delete = (%+v, %v), want (nil, nil)", gone, err)
	}
	// Deleting again is a no-op.
	if err := store.Delete(ctx, ns, "k1"); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestPutOverwritePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := New(mock.New())
	defer store.Close()
	ns := memory.Memories("alice")

	if err := store.Put(ctx, ns, "k1", map[string]any{"value": "v1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	first, _ := store.Get(ctx, ns, "k1")

	time.Sleep(time.Millisecond)
	if err := store.Put(ctx, ns, "k1", map[string]any{"value": "v2"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	second, _ := store.Get(ctx, ns, "k1")

	if second.Value["value"] != "v2" {
		t.Errorf("value = %v, want the overwrite", second.Value)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("overwrite changed CreatedAt")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Error("overwrite did not advance UpdatedAt")
	}
}

func TestSearchSimilarity(t *testing.T) {
	ctx := context.Background()
	store := New(mock.New())
	defer store.Close()
	ns := memory.Memories("alice")

	values := []string{"the dog chased the ball", "quarterly tax filing", "dinner with friends"}
	for i, v := range values {
		key := string(rune('a' + i))
		if err := store.Put(ctx, ns, key, map[string]any{"value": v}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	// Querying for a stored text must rank it first: the mock embedder
	// is deterministic, so identical text means identical vectors.
	items, err := store.Search(ctx, ns, "the dog chased the ball", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Value["value"] != "the dog chased the ball" {
		t.Errorf("top hit = %v", items[0].Value)
	}
	if items[0].Score < items[1].Score {
		t.Errorf("scores not descending: %v then %v", items[0].Score, items[1].Score)
	}
}

func TestSearchLimitLargerThanCollection(t *testing.T) {
	ctx := context.Background()
	store := New(mock.New())
	defer store.Close()
	ns := memory.Memories("alice")

	if err := store.Put(ctx, ns, "only", map[string]any{"value": "a single fact"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// chromem rejects nResults > collection size; the store retries
	// with smaller limits instead of failing.
	items, err := store.Search(ctx, ns, "a single fact", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want 1", len(items))
	}
}

func TestSearchEmptyQueryListsByRecency(t *testing.T) {
	ctx := context.Background()
	store := New(mock.New())
	defer store.Close()
	ns := memory.Todos("alice")

	for _, key := range []string{"t1", "t2", "t3"} {
		if err := store.Put(ctx, ns, key, map[string]any{"task": key}); err != nil {
			t.Fatalf("Put: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	items, err := store.Search(ctx, ns, "", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want limit 2", len(items))
	}
	if items[0].Key != "t3" || items[1].Key != "t2" {
		t.Errorf("order = %s, %s; want newest first", items[0].Key, items[1].Key)
	}
}

func TestSearchSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	store := New(mock.New())
	defer store.Close()
	ns := memory.Memories("alice")

	if err := store.Put(ctx, ns, "keep", map[string]any{"value": "keep this"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, ns, "drop", map[string]any{"value": "drop this"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, ns, "drop"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	items, err := store.Search(ctx, ns, "drop this", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, item := range items {
		if item.Key == "drop" {
			t.Error("deleted item surfaced in search results")
		}
	}
}

func TestNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	store := New(mock.New())
	defer store.Close()

	if err := store.Put(ctx, memory.Memories("alice"), "k", map[string]any{"value": "alice's"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	item, err := store.Get(ctx, memory.Memories("bob"), "k")
	if err != nil || item != nil {
		t.Errorf("bob sees alice's item: (%+v, %v)", item, err)
	}
	items, err := store.Search(ctx, memory.Todos("alice"), "", 10)
	if err != nil || len(items) != 0 {
		t.Errorf("todos namespace sees memories: (%d items, %v)", len(items), err)
	}
}

func TestSearchWithoutEmbedder(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	defer store.Close()
	ns := memory.Memories("alice")

	if err := store.Put(ctx, ns, "k", map[string]any{"value": "a fact"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// With no embedder, similarity queries degrade to recency.
	items, err := store.Search(ctx, ns, "a fact", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d items, want 1", len(items))
	}
}
