package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
)

// Manifest lists the documents of one print run.
type Manifest struct {
	// OutputDir is where documents are written. Relative paths resolve
	// against the manifest's directory. Defaults to that directory.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Workers bounds concurrent renders. Zero means DefaultWorkers.
	Workers int `yaml:"workers,omitempty"`

	// Strict refuses records with missing fields instead of printing blanks.
	Strict bool `yaml:"strict,omitempty"`

	// Credentials and Labels carry records inline.
	Credentials []CredentialItem `yaml:"credentials,omitempty"`
	Labels      []LabelItem      `yaml:"labels,omitempty"`

	// Readers and Shelves are looked up in the catalogue.
	Readers []string `yaml:"readers,omitempty"`
	Shelves []string `yaml:"shelves,omitempty"`
}

// CredentialItem is an inline credential record with an optional file name.
type CredentialItem struct {
	ir.CredentialRecord `yaml:",inline"`
	Output              string `yaml:"output,omitempty"`
}

// LabelItem is an inline label record with an optional file name.
type LabelItem struct {
	ir.BookLabelRecord `yaml:",inline"`
	Output             string `yaml:"output,omitempty"`
}

// NeedsCatalogue reports whether the manifest names readers or shelves.
func (m *Manifest) NeedsCatalogue() bool {
	return len(m.Readers) > 0 || len(m.Shelves) > 0
}

// LoadManifest reads and parses a manifest file. Unknown fields are
// rejected so typos like "credential:" fail loudly.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return ParseManifest(data, filepath.Dir(path))
}

// ParseManifest parses manifest YAML. baseDir anchors a relative OutputDir.
func ParseManifest(data []byte, baseDir string) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if m.OutputDir == "" {
		m.OutputDir = baseDir
	} else if !filepath.IsAbs(m.OutputDir) && baseDir != "" {
		m.OutputDir = filepath.Join(baseDir, m.OutputDir)
	}

	if err := validateManifest(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

func validateManifest(m *Manifest) error {
	if m.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", m.Workers)
	}
	if len(m.Credentials)+len(m.Labels)+len(m.Readers)+len(m.Shelves) == 0 {
		return fmt.Errorf("manifest lists no documents")
	}
	for i, c := range m.Credentials {
		if c.Output != "" && filepath.Base(c.Output) != c.Output {
			return fmt.Errorf("credentials[%d]: output %q must be a file name, not a path", i, c.Output)
		}
	}
	for i, l := range m.Labels {
		if l.Output != "" && filepath.Base(l.Output) != l.Output {
			return fmt.Errorf("labels[%d]: output %q must be a file name, not a path", i, l.Output)
		}
	}
	return nil
}
