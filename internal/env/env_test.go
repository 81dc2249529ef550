package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadForgeEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("FORGE_LOG_LEVEL=debug\n"), 0o644))

	// Claim the key so t.Setenv restores it, then clear it for the load.
	t.Setenv("FORGE_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("FORGE_LOG_LEVEL"))

	require.NoError(t, LoadForgeEnv(dir))
	assert.Equal(t, "debug", os.Getenv("FORGE_LOG_LEVEL"), "expected the file value in the environment")
}

func TestLoadForgeEnv_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("FORGE_LOG_LEVEL=debug\n"), 0o644))

	t.Setenv("FORGE_LOG_LEVEL", "warn")

	require.NoError(t, LoadForgeEnv(dir))
	assert.Equal(t, "warn", os.Getenv("FORGE_LOG_LEVEL"), "expected the existing value to win")
}

func TestLoadForgeEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadForgeEnv(t.TempDir()), "expected a missing file to be ignored")
}
