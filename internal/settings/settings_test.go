package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addrsentry/addrsentry/internal/config"
)

func TestFileStore_DefaultsBeforeAnySet(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIURL, s.APIURL)
	assert.False(t, s.AutoScan)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(FieldAPIURL, "http://x"))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://x", s.APIURL)
	assert.False(t, s.AutoScan)

	// A second store over the same file sees the persisted value.
	s, err = NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "http://x", s.APIURL)
}

func TestFileStore_SetsAreIndependent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	require.NoError(t, store.Set(FieldAPIURL, "http://x"))
	require.NoError(t, store.Set(FieldAutoScan, true))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://x", s.APIURL)
	assert.True(t, s.AutoScan)

	// Toggling autoScan leaves apiUrl untouched.
	require.NoError(t, store.Set(FieldAutoScan, false))
	s, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://x", s.APIURL)
	assert.False(t, s.AutoScan)
}

func TestFileStore_EmptyAPIURLReadsAsDefault(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	require.NoError(t, store.Set(FieldAPIURL, ""))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIURL, s.APIURL)
}

func TestFileStore_RejectsUnknownField(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))
	assert.Error(t, store.Set("theme", "dark"))
	assert.Error(t, store.Set(FieldAutoScan, "yes"))
}

func TestFileStore_CorruptFileRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	_, err := store.Load()
	assert.Error(t, err)

	// A write replaces the corrupt file and Load works again.
	require.NoError(t, store.Set(FieldAutoScan, true))
	s, err := store.Load()
	require.NoError(t, err)
	assert.True(t, s.AutoScan)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIURL, s.APIURL)

	require.NoError(t, store.Set(FieldAPIURL, "http://x"))
	require.NoError(t, store.Set(FieldAutoScan, true))

	s, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://x", s.APIURL)
	assert.True(t, s.AutoScan)
}
