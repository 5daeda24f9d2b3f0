package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "#ff4d4d", cfg.Colors.High)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults written to disk")

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateKeepsDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
backend = "diskv"
db_path = "` + filepath.ToSlash(filepath.Join(dir, "docs")) + `"

[keys]
add = "n"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "diskv", cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "docs"), filepath.FromSlash(cfg.DBPath))
	assert.Equal(t, "n", cfg.Keys.Add)
	assert.Equal(t, "d", cfg.Keys.Delete)
	assert.Equal(t, "#2ecc71", cfg.Colors.Low)
}

func TestLoadOrCreateRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`backend = "redis"`), 0o644))
	_, err := LoadOrCreate(path)
	assert.ErrorContains(t, err, "redis")
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`backend = `), 0o644))
	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "todue.toml")
	t.Setenv(EnvConfigPath, want)
	assert.Equal(t, want, ResolveConfigPath())
}
