package persistence

import (
	"errors"
	"hobbyboard/internal/kvstore"
	"hobbyboard/internal/structures"
	"hobbyboard/internal/testutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Store: structures.StoreConfig{Backend: "file"},
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: 1 * time.Second,
		},
	}
}

func newTestScheduler(conf *structures.Config, comp *testutil.MockCompressor) (*Scheduler, *kvstore.Memory, *testutil.MockMetrics) {
	store := kvstore.NewMemory()
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	fm := NewFileManager(comp, store, logger)
	return NewScheduler(conf, logger, store, fm, metrics).(*Scheduler), store, metrics
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	s, store, metrics := newTestScheduler(testConfig(path), &testutil.MockCompressor{})
	require.NoError(t, store.Set("visitorCount", "42"))

	require.NoError(t, s.Persist())
	assert.Equal(t, 1, metrics.PersistenceObserved)

	restored, restoredStore, _ := newTestScheduler(testConfig(path), &testutil.MockCompressor{})
	require.NoError(t, restored.Restore())
	val, ok, _ := restoredStore.Get("visitorCount")
	assert.True(t, ok)
	assert.Equal(t, "42", val)
}

func TestScheduler_Restore_MissingFile(t *testing.T) {
	s, store, _ := newTestScheduler(testConfig(filepath.Join(t.TempDir(), "none.dat")), &testutil.MockCompressor{})
	require.NoError(t, s.Restore())
	keys, _ := store.Keys()
	assert.Empty(t, keys)
}

func TestScheduler_PersistIfDirty_SkipsCleanStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	s, _, metrics := newTestScheduler(testConfig(path), &testutil.MockCompressor{})

	require.NoError(t, s.persistIfDirty())
	assert.Equal(t, 0, metrics.PersistenceObserved)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestScheduler_PersistIfDirty_WritesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	s, store, metrics := newTestScheduler(testConfig(path), &testutil.MockCompressor{})
	require.NoError(t, store.Set("visitorCount", "1"))

	require.NoError(t, s.persistIfDirty())
	assert.Equal(t, 1, metrics.PersistenceObserved)
	assert.FileExists(t, path)
	assert.False(t, store.TakeDirty())
}

func TestScheduler_FailedSaveKeepsStoreDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	s, store, _ := newTestScheduler(testConfig(path), &testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("boom") },
	})
	require.NoError(t, store.Set("visitorCount", "1"))

	assert.Error(t, s.persistIfDirty())
	assert.True(t, store.TakeDirty())

	store.MarkDirty()
	assert.Error(t, s.Persist())
	assert.True(t, store.TakeDirty())
}

func TestScheduler_NonFileBackendIsNoop(t *testing.T) {
	conf := testConfig(filepath.Join(t.TempDir(), "board.dat"))
	conf.Store.Backend = "sqlite"
	metrics := &testutil.MockMetrics{}
	s := NewScheduler(conf, &testutil.MockLogger{}, nil, nil, metrics)

	s.Init()
	assert.NoError(t, s.Restore())
	assert.NoError(t, s.Persist())
	s.Stop()
	assert.Equal(t, 0, metrics.PersistenceObserved)
}

func TestScheduler_InitStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	s, store, _ := newTestScheduler(testConfig(path), &testutil.MockCompressor{})
	require.NoError(t, store.Set("visitorCount", "1"))

	s.Init()
	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}
