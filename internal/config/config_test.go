package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"scene_dir": "in",
		"width": 320,
		"format": "png",
		"strict": true
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "in", cfg.SceneDir)
	assert.Equal(t, 320, cfg.Width)
	assert.Zero(t, cfg.Height)
	assert.Equal(t, "png", cfg.Format)
	assert.True(t, cfg.Strict)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	base := t.TempDir()
	cfg := Config{AtlasImage: "ui/atlas.png"}
	cfg.Resolve(Flags{BaseDir: base})

	assert.Equal(t, filepath.Join(base, "scenes"), cfg.SceneDir)
	assert.Equal(t, filepath.Join(base, "renders"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(base, "ui", "atlas.png"), cfg.AtlasImage)
	assert.Equal(t, filepath.Join(base, "ui", "atlas.json"), cfg.AtlasTable)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, 1.0, cfg.Scale)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.False(t, cfg.Strict)
}

func TestResolveFlagsOverride(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "out")
	cfg := Config{Format: "webp", Workers: 8, Scale: 3, Width: 64, Height: 32}
	cfg.Resolve(Flags{
		BaseDir:   base,
		SceneDir:  "mine",
		OutputDir: abs,
		Format:    "png",
		Scale:     0.5,
		Workers:   2,
		Strict:    true,
	})

	assert.Equal(t, filepath.Join(base, "mine"), cfg.SceneDir)
	assert.Equal(t, abs, cfg.OutputDir)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 0.5, cfg.Scale)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}
