package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 0.25, d.FlattenTolerance)
	assert.Equal(t, 2, d.SubScanlineShift)
	assert.Equal(t, 4.0, d.DefaultMiterLimit)
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("flatten_tolerance = 0.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.FlattenTolerance)
	assert.Equal(t, 2, cfg.SubScanlineShift)
	assert.Equal(t, 4.0, cfg.DefaultMiterLimit)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
