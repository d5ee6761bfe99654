package storage

import "encoding/json"

// Provider maps a fixed set of collection keys to serialized blobs in a
// local key-value medium. All collections share the provider's single
// namespace. Writes are whole-value, last-write-wins replacements; there
// is no optimistic concurrency because the store has a single logical
// writer.
//
// Concurrency note:
//   - A Provider is not safe for concurrent use by multiple goroutines
//     without external synchronization.
//   - Running multiple cripes processes against the same storage path at
//     the same time is not supported and may lead to data loss.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Raw collection access. GetRaw reports whether a value is stored at
	// all; an absent key is not an error.
	GetRaw(key string) (json.RawMessage, bool, error)
	SetRaw(key string, data json.RawMessage) error

	// ClearAll removes every known collection key. Callers must discard
	// all in-memory state afterwards so it cannot diverge from the
	// now-empty store.
	ClearAll() error

	// Utils
	GetConfigPath() string
}
