package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 25, cfg.DefaultPerPage)
	assert.Equal(t, 100, cfg.MaxPerPage)
	assert.False(t, cfg.Dev)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrgrid.yaml")
	content := []byte("server:\n  addr: \":9090\"\n  default_per_page: 10\n  dev: true\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 10, cfg.DefaultPerPage)
	assert.True(t, cfg.Dev)
	// Untouched keys keep their defaults.
	assert.Equal(t, 100, cfg.MaxPerPage)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HRGRID_SERVER_ADDR", ":7070")
	t.Setenv("HRGRID_SERVER_MAX_PER_PAGE", "200")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 200, cfg.MaxPerPage)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("HRGRID_SERVER_DEFAULT_PER_PAGE", "0")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMaxBelowDefault(t *testing.T) {
	t.Setenv("HRGRID_SERVER_MAX_PER_PAGE", "5")
	_, err := Load("")
	assert.Error(t, err)
}
