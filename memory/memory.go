package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// Namespace scopes stored items by entity kind and user.
type Namespace struct {
	Kind   string
	UserID string
}

func (n Namespace) String() string {
	return n.Kind + "/" + n.UserID
}

// The four namespaces the assistant persists into.
func Memories(userID string) Namespace     { return Namespace{Kind: "memories", UserID: userID} }
func Profile(userID string) Namespace      { return Namespace{Kind: "profile", UserID: userID} }
func Todos(userID string) Namespace        { return Namespace{Kind: "todos", UserID: userID} }
func Instructions(userID string) Namespace { return Namespace{Kind: "instructions", UserID: userID} }

// ProfileKey is the fixed key of the singleton profile record.
const ProfileKey = "profile"

// Item is one stored record. Score is populated only on similarity
// search results.
type Item struct {
	Namespace Namespace
	Key       string
	Value     map[string]any
	Score     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FormatValue renders an item value for prompt injection. A value whose
// only payload is a single text field reads as that text; anything else
// reads as compact JSON.
func (it Item) FormatValue() string {
	if len(it.Value) == 1 {
		for _, v := range it.Value {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	b, err := json.Marshal(it.Value)
	if err != nil {
		return fmt.Sprintf("%v", it.Value)
	}
	return string(b)
}

// Store is the capability boundary over the namespaced key/value +
// similarity-search backend. The store is the sole durable owner of
// assistant state; last-write-wins semantics are assumed for concurrent
// writes to the same (namespace, key).
//
// Implementations: memstore (in-process, chromem-go vectors),
// sqlite (durable, modernc.org/sqlite).
type Store interface {
	// Put writes value at (namespace, key), overwriting any previous value.
	Put(ctx context.Context, ns Namespace, key string, value map[string]any) error

	// Get retrieves one item. Absence is not an error: (nil, nil).
	Get(ctx context.Context, ns Namespace, key string) (*Item, error)

	// Search lists up to limit items from the namespace. A non-empty
	// query ranks by similarity (highest first) and fills Score; an
	// empty query lists by recency.
	Search(ctx context.Context, ns Namespace, query string, limit int) ([]Item, error)

	// Delete removes an item. Deleting an absent key is a no-op.
	Delete(ctx context.Context, ns Namespace, key string) error

	// Close releases resources.
	Close() error
}

// Embedder converts text to vector embeddings for similarity search.
// Implementations: mock (testing), onnx (local all-MiniLM-L6-v2),
// plus the ristretto-backed Cached decorator.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// EmbedText is the canonical text representation of a value for
// embedding: the same rendering used for prompt injection.
func EmbedText(value map[string]any) string {
	return Item{Value: value}.FormatValue()
}

// SortByRecency orders items newest-first, used by stores for
// empty-query listings.
func SortByRecency(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}

// CosineSimilarity computes the cosine similarity of two vectors.
// Returns 0 for mismatched or zero-length input.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
