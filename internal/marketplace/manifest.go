// Package marketplace implements the distribution conventions for skill
// bundles: a marketplace.json listing and .zip packaging.
package marketplace

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/klauern/skillshelf/internal/model"
)

// ManifestName is the conventional listing filename.
const ManifestName = "marketplace.json"

// Manifest is the marketplace listing for a packaged bundle.
type Manifest struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	BuildID     string    `json:"build_id"`
	CreatedAt   time.Time `json:"created_at"`
	Skills      []Listing `json:"skills"`
}

// Listing is one skill's entry in the manifest.
type Listing struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path"`
	References  int    `json:"references"`
}

// NewManifest builds a manifest for the bundle.
func NewManifest(name, version, description string, b *model.Bundle) *Manifest {
	m := &Manifest{
		Name:        name,
		Version:     version,
		Description: description,
		BuildID:     uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Skills:      make([]Listing, 0, b.Len()),
	}
	for _, skill := range b.Skills {
		m.Skills = append(m.Skills, Listing{
			Name:        skill.Name,
			Description: skill.Description,
			Path:        skill.Name + "/SKILL.md",
			References:  len(skill.References),
		})
	}
	return m
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("manifest version is required")
	}
	if len(m.Skills) == 0 {
		return fmt.Errorf("manifest lists no skills")
	}
	seen := make(map[string]bool)
	for i, l := range m.Skills {
		if l.Name == "" {
			return fmt.Errorf("skills[%d]: name is required", i)
		}
		if seen[l.Name] {
			return fmt.Errorf("skills[%d]: duplicate skill %q", i, l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}

// Encode renders the manifest as indented JSON.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// LoadManifest reads and validates a marketplace.json file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller-provided manifest path
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %q: %w", path, err)
	}
	return &m, nil
}
