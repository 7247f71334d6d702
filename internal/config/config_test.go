package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "KV_BACKEND", "DB_PATH", "DATA_DIR", "LOG_LEVEL", "LOG_FILE", "RESTOCK_THRESHOLD",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, BackendSQLite, cfg.KVBackend)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, 5, cfg.RestockThreshold)
}

func TestLoadCustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("KV_BACKEND", "local")
	t.Setenv("DATA_DIR", "/srv/truckfest")
	t.Setenv("RESTOCK_THRESHOLD", "10")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, BackendLocal, cfg.KVBackend)
	assert.Equal(t, "/srv/truckfest", cfg.DataDir)
	assert.Equal(t, 10, cfg.RestockThreshold)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("KV_BACKEND", "redis")
	_, err := Load("")
	assert.ErrorContains(t, err, "KV_BACKEND")

	clearEnv(t)
	t.Setenv("RESTOCK_THRESHOLD", "lots")
	_, err = Load("")
	assert.ErrorContains(t, err, "RESTOCK_THRESHOLD")

	clearEnv(t)
	t.Setenv("RESTOCK_THRESHOLD", "-1")
	_, err = Load("")
	assert.ErrorContains(t, err, "RESTOCK_THRESHOLD")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LISTEN_ADDR=:1111\nKV_BACKEND=memory\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr, "the environment wins over the file")
	assert.Equal(t, BackendMemory, cfg.KVBackend)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
