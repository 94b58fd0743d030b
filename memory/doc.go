// Package memory defines the persistent store boundary for assistant
// state: free-form memories, the user profile, todos, and behavioral
// instructions, all namespaced by (kind, user id).
//
// Architecture:
//   - Store: namespaced key/value storage with similarity search
//     (memstore for in-process use, sqlite for durability)
//   - Embedder: text-to-vector conversion used by similarity search
//     (mock for tests, onnx for local all-MiniLM-L6-v2 inference)
//
// The conversation core never caches store state across turns; it reads
// what it needs each turn and writes through the tool handlers.
package memory
