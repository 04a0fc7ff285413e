// Package kvstore holds the flat string key-value stores the record
// store is persisted in.
package kvstore

// Store is a flat string key-value store. Implementations are safe for
// concurrent use.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
	Clear() error
	Close() error
}

// Snapshotter is implemented by stores that live in memory and are
// persisted as a whole by an external writer.
type Snapshotter interface {
	Snapshot() map[string]string
	Restore(data map[string]string)
	// TakeDirty reports whether the store changed since the last call
	// and resets the flag.
	TakeDirty() bool
	MarkDirty()
}
