package persistence

import (
	"encoding/json"
	"errors"
	"hobbyboard/internal/kvstore"
	"hobbyboard/internal/testutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileManager(compressor *testutil.MockCompressor) (*FileManager, *kvstore.Memory, *testutil.MockLogger) {
	store := kvstore.NewMemory()
	logger := &testutil.MockLogger{}
	return NewFileManager(compressor, store, logger), store, logger
}

func TestFileManager_SaveToFile_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.dat")

	fm, store, _ := newTestFileManager(&testutil.MockCompressor{})
	require.NoError(t, store.Set("visitorCount", "3"))

	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_SaveToFile_WritesEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	fm, store, _ := newTestFileManager(&testutil.MockCompressor{})
	require.NoError(t, store.Set("galleryLikes", `{"image_1":2}`))

	require.NoError(t, fm.SaveToFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, snapshotVersion, snap.Version)
	assert.Equal(t, `{"image_1":2}`, snap.Keys["galleryLikes"])
}

func TestFileManager_SaveToFile_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	fm, _, _ := newTestFileManager(&testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("boom") },
	})

	assert.Error(t, fm.SaveToFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_SaveToFile_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "board.dat")
	fm, _, _ := newTestFileManager(&testutil.MockCompressor{})
	require.NoError(t, fm.SaveToFile(path))
	assert.FileExists(t, path)
}

func TestFileManager_SaveToFile_BadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	fm, _, _ := newTestFileManager(&testutil.MockCompressor{})
	assert.Error(t, fm.SaveToFile(filepath.Join(blocker, "board.dat")))
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm, _, _ := newTestFileManager(&testutil.MockCompressor{})
	err := fm.LoadFromFile("/nonexistent/path/file.dat")
	assert.NoError(t, err) // not an error, just no data
}

func TestFileManager_RoundTripWithZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	comp, cleanup, err := NewZstdCompressor()
	require.NoError(t, err)
	defer cleanup()

	src := kvstore.NewMemory()
	require.NoError(t, src.Set("visitorCount", "10"))
	require.NoError(t, src.Set("myLikedImages", `["image_3"]`))
	require.NoError(t, NewFileManager(comp, src, &testutil.MockLogger{}).SaveToFile(path))

	dst := kvstore.NewMemory()
	require.NoError(t, NewFileManager(comp, dst, &testutil.MockLogger{}).LoadFromFile(path))

	assert.Equal(t, src.Snapshot(), dst.Snapshot())
	assert.False(t, dst.TakeDirty())
}

func TestFileManager_LoadFromFile_BrowserExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localStorage.json")
	export := `{
		"visitorCount": "5",
		"hobbyComments": "{\"yoga\":[{\"id\":1,\"author\":\"민수\",\"text\":\"좋아요\",\"date\":\"2024-05-01T00:00:00.000Z\"}]}",
		"galleryLikes": {"image_1": 2}
	}`
	require.NoError(t, os.WriteFile(path, []byte(export), 0644))

	comp, cleanup, err := NewZstdCompressor()
	require.NoError(t, err)
	defer cleanup()
	store := kvstore.NewMemory()
	logger := &testutil.MockLogger{}
	require.NoError(t, NewFileManager(comp, store, logger).LoadFromFile(path))

	val, ok, _ := store.Get("visitorCount")
	assert.True(t, ok)
	assert.Equal(t, "5", val)

	val, _, _ = store.Get("hobbyComments")
	assert.Contains(t, val, `"author":"민수"`)

	val, _, _ = store.Get("galleryLikes")
	assert.JSONEq(t, `{"image_1": 2}`, val)

	assert.True(t, logger.Has("warn"))
	assert.True(t, store.TakeDirty(), "imported data is rewritten as a snapshot")
}

func TestFileManager_LoadFromFile_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0x00, 0x13}, 0644))

	comp, cleanup, err := NewZstdCompressor()
	require.NoError(t, err)
	defer cleanup()

	fm := NewFileManager(comp, kvstore.NewMemory(), &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_LoadFromFile_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	comp, cleanup, err := NewZstdCompressor()
	require.NoError(t, err)
	defer cleanup()

	src := kvstore.NewMemory()
	require.NoError(t, src.Set("hobbyComments", `{"yoga":[]}`))
	require.NoError(t, NewFileManager(comp, src, &testutil.MockLogger{}).SaveToFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:len(raw)/2], 0644))

	dst := kvstore.NewMemory()
	assert.Error(t, NewFileManager(comp, dst, &testutil.MockLogger{}).LoadFromFile(path))
	keys, _ := dst.Keys()
	assert.Empty(t, keys)
}

func TestFileManager_LoadFromFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.dat")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	fm, _, logger := newTestFileManager(&testutil.MockCompressor{})
	assert.Error(t, fm.LoadFromFile(path))
	assert.True(t, logger.Has("warn"))
}
