package mock

import (
	"context"
	"math"
	"testing"
)

func TestEmbedDeterministic(t *testing.T) {
	ctx := context.Background()
	e := New()

	a, err := e.Embed(ctx, "the same text")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed(ctx, "the same text")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != e.Dimensions() {
		t.Fatalf("dimensions = %d, want %d", len(a), e.Dimensions())
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("component %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEmbedDistinctTexts(t *testing.T) {
	ctx := context.Background()
	e := New()

	a, _ := e.Embed(ctx, "first text")
	b, _ := e.Embed(ctx, "completely different")
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical vectors")
	}
}

func TestEmbedNormalized(t *testing.T) {
	vec, err := New().Embed(context.Background(), "normalize me")
	if err != nil {
		t.Fatal(err)
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-5 {
		t.Errorf("vector norm = %v, want 1", math.Sqrt(norm))
	}
}

func TestCustomDimensions(t *testing.T) {
	e := NewWithDimensions(16)
	if e.Dimensions() != 16 {
		t.Fatalf("Dimensions = %d", e.Dimensions())
	}
	vec, err := e.Embed(context.Background(), "small")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 16 {
		t.Errorf("vector length = %d", len(vec))
	}
}
