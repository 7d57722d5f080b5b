package stage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed data/stages.json
var defaultStagesJSON []byte

// Parse decodes and validates a catalog file.
func Parse(data []byte, source string) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("stage: failed to parse %s: %w", source, err)
	}

	defs := make([]Definition, len(f.Stages))
	for i, r := range f.Stages {
		defs[i] = r.definition()
	}
	return NewCatalog(source, defs...)
}

// Default returns the embedded 15-stage catalog.
func Default() (*Catalog, error) {
	return Parse(defaultStagesJSON, "embedded")
}

// Load loads a stage catalog.
// Search order: customPath -> ~/.santa/stages.json -> ./configs/stages.json -> embedded default.
func Load(customPath string) (*Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("stage: failed to read %s: %w", customPath, err)
		}
		return Parse(data, customPath)
	}

	candidates := []string{filepath.Join("configs", "stages.json")}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append([]string{filepath.Join(home, ".santa", "stages.json")}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if c, err := Parse(data, path); err == nil {
			return c, nil
		}
	}

	return Default()
}

// Marshal encodes a catalog in the canonical JSON file format.
func Marshal(c *Catalog) ([]byte, error) {
	f := File{Stages: make([]Record, 0, c.Len())}
	for _, d := range c.stages {
		f.Stages = append(f.Stages, recordOf(d))
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("stage: marshal catalog: %w", err)
	}
	return append(data, '\n'), nil
}
