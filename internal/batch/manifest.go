package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Scene    string `json:"scene"`
	Image    string `json:"image"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Commands int    `json:"commands"`
	Flushes  int    `json:"flushes"`
}

// WriteManifest writes manifest.json listing the successful results. Image
// paths are relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	base := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		img := r.Output
		if rel, err := filepath.Rel(base, r.Output); err == nil {
			img = filepath.ToSlash(rel)
		}
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Scene:    r.Scene,
			Image:    img,
			Width:    r.Width,
			Height:   r.Height,
			Commands: r.Commands,
			Flushes:  r.Flushes,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
