package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyBackendURL, "http://localhost:8000"))

	val, ok := store.Get(KeyBackendURL)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8000", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyTimezone, "Europe/London"))
	assert.Equal(t, "Europe/London", store.GetString(KeyTimezone))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("int_key", 42))
	assert.Equal(t, "", store.GetString("int_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyPollInterval, 120))
	assert.Equal(t, 120, store.GetInt(KeyPollInterval))

	assert.Equal(t, 0, store.GetInt("nonexistent"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("flag", true))
	assert.True(t, store.GetBool("flag"))
	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyBackendURL, "http://backend:9000"))
	require.NoError(t, store.Set(KeyPollInterval, 60))

	// A fresh store reading the same file sees the values.
	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", reloaded.GetString(KeyBackendURL))
	assert.Equal(t, 60, reloaded.GetInt(KeyPollInterval))
}

func TestConfigStore_Load_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[backend]\nurl = \"http://localhost:8000\"\n\n[user]\ntimezone = \"UTC\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", store.GetString(KeyBackendURL))
	assert.Equal(t, "UTC", store.GetString(KeyTimezone))
}

func TestConfigStore_Load_MissingFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Load on a missing file starts empty rather than failing.
	require.NoError(t, store.Set(KeyBackendURL, "http://localhost:8000"))
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, store.Load())
	_, ok := store.Get(KeyBackendURL)
	assert.False(t, ok)
}
