package manifest

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest records every artifact a pipeline run produced.
type Manifest struct {
	Artifacts   []Artifact `json:"artifacts"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Artifact describes a single emitted artifact.
type Artifact struct {
	Source      string `json:"source"`                // resource path relative to the context
	Name        string `json:"name"`                  // interpolated artifact filename
	OutputPath  string `json:"output_path"`           // path within the output directory
	PublicPath  string `json:"public_path"`           // generated public-path expression
	ModulePath  string `json:"module_path,omitempty"` // re-export stub, when one was written
	Size        int64  `json:"size"`
	ContentHash string `json:"content_hash"`
}

// Add appends an artifact record.
func (m *Manifest) Add(a Artifact) {
	m.Artifacts = append(m.Artifacts, a)
}

// Save saves the manifest to a JSON file
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a manifest previously written by Save.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
