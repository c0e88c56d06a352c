package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"microraster/internal/atlas"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	SceneDir   string `json:"scene_dir"`
	AtlasImage string `json:"atlas_image"` // empty selects the built-in atlas
	AtlasTable string `json:"atlas_table"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	QueueCapacity int     `json:"queue_capacity"`
	Format        string  `json:"format"`
	Scale         float64 `json:"scale"`
	Strict        bool    `json:"strict"`
	SceneEncoding string  `json:"scene_encoding"`
	Workers       int     `json:"workers"`
}

// Defaults for unset render settings.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFormat = "webp"
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Strict {
		c.Strict = true
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.SceneDir == "" {
			c.SceneDir = filepath.Join(c.BaseDir, "scenes")
		} else {
			c.SceneDir = c.abs(c.SceneDir)
		}
		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "renders")
		} else {
			c.OutputDir = c.abs(c.OutputDir)
		}
		if c.AtlasImage != "" {
			c.AtlasImage = c.abs(c.AtlasImage)
		}
		if c.AtlasTable != "" {
			c.AtlasTable = c.abs(c.AtlasTable)
		}
	}
	if c.AtlasImage != "" && c.AtlasTable == "" {
		c.AtlasTable = atlas.TablePath(c.AtlasImage)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	SceneDir  string
	OutputDir string
	Format    string
	Scale     float64
	Workers   int
	Strict    bool
}

func (c *Config) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if _, err := os.Stat(filepath.Join(base, "scenes")); err == nil {
				return base
			}
		}
	}

	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "scenes")); err == nil {
		return cwd
	}

	return ""
}
