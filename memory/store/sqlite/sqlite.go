// Package sqlite provides a durable Store backed by a local SQLite
// database via modernc.org/sqlite (no cgo).
//
// Values are stored as JSON; embeddings computed at write time are kept
// alongside each row and ranked by cosine similarity in Go on query.
// WAL is enabled to support concurrent reads while writing.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/maltai/maltai-go/memory"
)

type Store struct {
	db       *sql.DB
	embedder memory.Embedder
}

// Open creates or opens the database at path. The embedder may be nil,
// in which case similarity queries degrade to recency listings.
func Open(path string, embedder memory.Embedder) (*Store, error) {
	p := filepath.Clean(strings.TrimSpace(path))
	if p == "" {
		return nil, errors.New("missing db path")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Store{db: db, embedder: embedder}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL`,
		`CREATE TABLE IF NOT EXISTS items (
			kind       TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			embedding  BLOB,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (kind, user_id, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_updated ON items(kind, user_id, updated_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Put writes value at (namespace, key), overwriting any previous value.
func (s *Store) Put(ctx context.Context, ns memory.Namespace, key string, value map[string]any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}

	var blob []byte
	if s.embedder != nil {
		embedding, err := s.embedder.Embed(ctx, memory.EmbedText(value))
		if err != nil {
			return fmt.Errorf("embed value: %w", err)
		}
		blob = encodeVector(embedding)
	}

	now := time.Now().UnixMilli()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (kind, user_id, key, value, embedding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, user_id, key) DO UPDATE SET
			value = excluded.value,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at`,
		ns.Kind, ns.UserID, key, string(raw), blob, now, now)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", ns, key, err)
	}
	return nil
}

// Get retrieves one item; absence yields (nil, nil).
func (s *Store) Get(ctx context.Context, ns memory.Namespace, key string) (*memory.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value, created_at, updated_at FROM items
		WHERE kind = ? AND user_id = ? AND key = ?`,
		ns.Kind, ns.UserID, key)

	var raw string
	var createdAt, updatedAt int64
	if err := row.Scan(&raw, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s/%s: %w", ns, key, err)
	}

	value := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("unmarshal %s/%s: %w", ns, key, err)
	}
	return &memory.Item{
		Namespace: ns,
		Key:       key,
		Value:     value,
		CreatedAt: time.UnixMilli(createdAt),
		UpdatedAt: time.UnixMilli(updatedAt),
	}, nil
}

// Search lists up to limit items. A non-empty query loads the
// namespace's embeddings and ranks them by cosine similarity in Go;
// an empty query lists by recency straight from SQL.
func (s *Store) Search(ctx context.Context, ns memory.Namespace, query string, limit int) ([]memory.Item, error) {
	if limit <= 0 {
		return nil, nil
	}
	if query == "" || s.embedder == nil {
		return s.listRecent(ctx, ns, limit)
	}

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value, embedding, created_at, updated_at FROM items
		WHERE kind = ? AND user_id = ?`,
		ns.Kind, ns.UserID)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", ns, err)
	}
	defer rows.Close()

	var items []memory.Item
	for rows.Next() {
		var key, raw string
		var blob []byte
		var createdAt, updatedAt int64
		if err := rows.Scan(&key, &raw, &blob, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		value := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("unmarshal %s/%s: %w", ns, key, err)
		}
		items = append(items, memory.Item{
			Namespace: ns,
			Key:       key,
			Value:     value,
			Score:     memory.CosineSimilarity(queryEmbedding, decodeVector(blob)),
			CreatedAt: time.UnixMilli(createdAt),
			UpdatedAt: time.UnixMilli(updatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortByScore(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) listRecent(ctx context.Context, ns memory.Namespace, limit int) ([]memory.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value, created_at, updated_at FROM items
		WHERE kind = ? AND user_id = ?
		ORDER BY updated_at DESC LIMIT ?`,
		ns.Kind, ns.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", ns, err)
	}
	defer rows.Close()

	var items []memory.Item
	for rows.Next() {
		var key, raw string
		var createdAt, updatedAt int64
		if err := rows.Scan(&key, &raw, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		value := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("unmarshal %s/%s: %w", ns, key, err)
		}
		items = append(items, memory.Item{
			Namespace: ns,
			Key:       key,
			Value:     value,
			CreatedAt: time.UnixMilli(createdAt),
			UpdatedAt: time.UnixMilli(updatedAt),
		})
	}
	return items, rows.Err()
}

// Delete removes an item; absent keys are a no-op.
func (s *Store) Delete(ctx context.Context, ns memory.Namespace, key string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM items WHERE kind = ? AND user_id = ? AND key = ?`,
		ns.Kind, ns.UserID, key)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", ns, key, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func sortByScore(items []memory.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

func encodeVector(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	if len(buf) < 4 {
		return nil
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec
}
