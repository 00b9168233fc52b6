package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Source points at one candidate document on disk.
type Source struct {
	ID   string `mapstructure:"id"`
	File string `mapstructure:"file"`
}

// LoadManifest reads a YAML manifest listing candidate documents as
// id/file entries. Entries without a file are rejected; a missing id falls
// back to the file name.
func LoadManifest(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", path, err)
	}

	var sources []Source
	if err := mapstructure.Decode(raw, &sources); err != nil {
		return nil, fmt.Errorf("decoding manifest %q: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range sources {
		if strings.TrimSpace(sources[i].File) == "" {
			return nil, fmt.Errorf("manifest %q entry %d has no file", path, i)
		}
		if !filepath.IsAbs(sources[i].File) {
			sources[i].File = filepath.Join(base, sources[i].File)
		}
		if strings.TrimSpace(sources[i].ID) == "" {
			sources[i].ID = filepath.Base(sources[i].File)
		}
	}

	return sources, nil
}

// ScanDir lists all supported documents in a directory as candidate sources,
// sorted by file name. The file name serves as the candidate ID.
func ScanDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading candidate directory %q: %w", dir, err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".txt", ".md":
			sources = append(sources, Source{
				ID:   entry.Name(),
				File: filepath.Join(dir, entry.Name()),
			})
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].ID < sources[j].ID
	})

	return sources, nil
}
