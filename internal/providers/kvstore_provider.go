package providers

import (
	"fmt"
	"hobbyboard/internal/kvstore"
	"hobbyboard/internal/structures"
)

// NewKeyValueProvider opens the backend named by store.backend. The
// returned cleanup closes it.
func NewKeyValueProvider(conf *structures.Config, logger Logger) (kvstore.Store, func(), error) {
	var (
		store kvstore.Store
		err   error
	)
	switch conf.Store.Backend {
	case "memory", "file":
		store = kvstore.NewMemory()
	case "sqlite":
		store, err = kvstore.OpenSQLite(conf.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", conf.Store.Backend)
	}
	logger.Infof(TypeApp, "Store backend: %s", conf.Store.Backend)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(TypeApp, "Close store: %s", err)
		}
	}
	return store, cleanup, nil
}

// NewSnapshotProvider returns the in-memory view of store used by the
// snapshot scheduler, or nil when the backend persists on its own.
func NewSnapshotProvider(store kvstore.Store) kvstore.Snapshotter {
	if s, ok := store.(kvstore.Snapshotter); ok {
		return s
	}
	return nil
}
