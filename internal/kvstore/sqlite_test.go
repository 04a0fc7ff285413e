package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "board.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestSQLite_GetMissing(t *testing.T) {
	s, _ := openTestSQLite(t)
	val, ok, err := s.Get("hobbyComments")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestSQLite_SetUpserts(t *testing.T) {
	s, _ := openTestSQLite(t)
	require.NoError(t, s.Set("visitorCount", "1"))
	require.NoError(t, s.Set("visitorCount", "2"))

	val, ok, err := s.Get("visitorCount")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", val)
}

func TestSQLite_KeysSortedAndRemove(t *testing.T) {
	s, _ := openTestSQLite(t)
	require.NoError(t, s.Set("myLikedImages", "[]"))
	require.NoError(t, s.Set("galleryLikes", "{}"))
	require.NoError(t, s.Set("visitorCount", "3"))
	require.NoError(t, s.Remove("myLikedImages"))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"galleryLikes", "visitorCount"}, keys)
}

func TestSQLite_Clear(t *testing.T) {
	s, _ := openTestSQLite(t)
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Clear())

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	s, path := openTestSQLite(t)
	require.NoError(t, s.Set("visitorCount", "42"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	val, ok, err := reopened.Get("visitorCount")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", val)
}
