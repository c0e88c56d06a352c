package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"microraster/internal/atlas"
	"microraster/internal/batch"
	"microraster/internal/config"
	"microraster/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Render only first N scenes for testing")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: auto-detect)")
	sceneDir := flag.String("scenes", "", "Scene directory (default: <base>/scenes)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/renders)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	scale := flag.Float64("scale", 0, "Output scale factor (default: 1)")
	strict := flag.Bool("strict", false, "Abort a scene on the first sampling or atlas-id violation")
	verbose := flag.Bool("v", false, "Log renderer warnings and flushes to stderr")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		SceneDir:  *sceneDir,
		OutputDir: *outputDir,
		Format:    *format,
		Scale:     *scale,
		Workers:   *workers,
		Strict:    *strict,
	})

	if cfg.SceneDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find a scenes directory. Use -scenes, -base or config.json.")
		os.Exit(1)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "renders"
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Load atlas
	atl := atlas.Default()
	if cfg.AtlasImage != "" {
		var err error
		atl, err = atlas.Load(cfg.AtlasImage, cfg.AtlasTable)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading atlas: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Atlas: %s (%d entries)\n", cfg.AtlasImage, len(atl.IDs()))
	} else {
		fmt.Printf("Atlas: built-in (%d entries)\n", len(atl.IDs()))
	}

	paths, err := scene.Find(cfg.SceneDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	if len(paths) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Immediate-mode scene renderer -> %s%s\n", cfg.Format, mode)
	fmt.Printf("Scenes: %d, Workers: %d, Strict: %v\n", len(paths), cfg.Workers, cfg.Strict)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:     cfg.OutputDir,
		Atlas:         atl,
		SceneEncoding: cfg.SceneEncoding,
		Width:         cfg.Width,
		Height:        cfg.Height,
		QueueCapacity: cfg.QueueCapacity,
		Format:        cfg.Format,
		Scale:         cfg.Scale,
		Strict:        cfg.Strict,
		Workers:       cfg.Workers,
		Logger:        logger,
	}

	results := batch.Run(batchCfg, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Scene, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
