// Package memstore provides an in-process Store: plain map storage for
// key/value access plus chromem-go collections for similarity search.
// chromem-go is a pure Go, embedded vector database.
package memstore

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/maltai/maltai-go/memory"
)

// Store keeps all items in memory. One chromem collection is maintained
// per namespace so users and entity kinds never see each other's vectors.
type Store struct {
	db          *chromem.DB
	embedder    memory.Embedder
	mu          sync.RWMutex
	items       map[string]memory.Item
	collections map[string]*chromem.Collection
}

// New creates an in-process store. The embedder may be nil, in which
// case similarity queries degrade to recency listings.
func New(embedder memory.Embedder) *Store {
	return &Store{
		db:          chromem.NewDB(),
		embedder:    embedder,
		items:       make(map[string]memory.Item),
		collections: make(map[string]*chromem.Collection),
	}
}

func itemKey(ns memory.Namespace, key string) string {
	return ns.String() + "\x00" + key
}

// getOrCreateCollection returns the vector collection for a namespace.
func (s *Store) getOrCreateCollection(ns memory.Namespace) (*chromem.Collection, error) {
	name := strings.ReplaceAll(ns.String(), "/", "_")
	if name == "_" {
		name = "global"
	}

	s.mu.RLock()
	col, exists := s.collections[name]
	s.mu.RUnlock()
	if exists {
		return col, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if col, exists := s.collections[name]; exists {
		return col, nil
	}

	col, err := s.db.CreateCollection(
		name,
		nil, // no custom embedding func (we provide embeddings)
		nil, // no custom distance func (use default cosine)
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	s.collections[name] = col
	return col, nil
}

// Put writes value at (namespace, key), overwriting any previous value.
func (s *Store) Put(ctx context.Context, ns memory.Namespace, key string, value map[string]any) error {
	now := time.Now()
	item := memory.Item{
		Namespace: ns,
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	if prev, ok := s.items[itemKey(ns, key)]; ok {
		item.CreatedAt = prev.CreatedAt
	}
	s.items[itemKey(ns, key)] = item
	s.mu.Unlock()

	if s.embedder == nil {
		return nil
	}

	text := memory.EmbedText(value)
	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed value: %w", err)
	}

	col, err := s.getOrCreateCollection(ns)
	if err != nil {
		return err
	}
	doc := chromem.Document{
		ID:        key,
		Content:   text,
		Embedding: embedding,
		Metadata:  map[string]string{"kind": ns.Kind, "user_id": ns.UserID},
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	return nil
}

// Get retrieves one item; absence yields (nil, nil).
func (s *Store) Get(ctx context.Context, ns memory.Namespace, key string) (*memory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemKey(ns, key)]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

// Search lists up to limit items from the namespace. A non-empty query
// ranks by vector similarity; an empty query lists by recency.
func (s *Store) Search(ctx context.Context, ns memory.Namespace, query string, limit int) ([]memory.Item, error) {
	if limit <= 0 {
		return nil, nil
	}
	if query == "" || s.embedder == nil {
		return s.listRecent(ns, limit), nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	col, err := s.getOrCreateCollection(ns)
	if err != nil {
		return nil, err
	}

	// chromem-go requires nResults <= collection size.
	// Retry with smaller limits until the query fits.
	var results []chromem.Result
	for currentLimit := limit; currentLimit >= 1; currentLimit-- {
		results, err = col.QueryEmbedding(ctx, embedding, currentLimit, nil, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			if currentLimit == 1 {
				return nil, nil // collection is empty
			}
			continue
		}
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]memory.Item, 0, len(results))
	for _, result := range results {
		item, ok := s.items[itemKey(ns, result.ID)]
		if !ok {
			// Vector outlived its item (deleted key); skip it.
			log.Printf("[MEMSTORE] Skipping orphaned vector %s in %s", result.ID, ns)
			continue
		}
		item.Score = float64(result.Similarity)
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) listRecent(ns memory.Namespace, limit int) []memory.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []memory.Item
	for _, item := range s.items {
		if item.Namespace == ns {
			items = append(items, item)
		}
	}
	memory.SortByRecency(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Delete removes the item. The chromem document is left behind and
// filtered out of future queries, matching chromem-go's lack of a
// by-ID delete.
func (s *Store) Delete(ctx context.Context, ns memory.Namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, itemKey(ns, key))
	return nil
}

// Close releases resources. Everything lives in memory, nothing to do.
func (s *Store) Close() error {
	return nil
}

// isInsufficientDocsError checks if the error is chromem complaining
// that nResults exceeds the number of stored documents.
func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
