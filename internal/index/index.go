// Package index builds a serializable catalog of a skill bundle.
//
// The index is what a host assistant consumes to decide which skills exist
// and when to activate them: per-skill name, description, reference listing,
// and content digests. Bodies are not embedded; they load lazily through the
// bundle package or the HTTP server.
package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/klauern/skillshelf/internal/logging"
	"github.com/klauern/skillshelf/internal/model"
)

// Version identifies the index schema.
const Version = "1"

// Index is the catalog of a loaded bundle.
type Index struct {
	Version string  `json:"version"`
	BuildID string  `json:"build_id"`
	BuiltAt string  `json:"built_at"`
	Root    string  `json:"root"`
	Skills  []Entry `json:"skills"`
}

// Entry is the indexed metadata for one skill.
type Entry struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Path        string                `json:"path"`
	Digest      string                `json:"digest"`
	Words       int                   `json:"words"`
	References  []model.ReferenceFile `json:"references,omitempty"`
	ModifiedAt  time.Time             `json:"modified_at"`
}

// Build constructs an index from a loaded bundle.
func Build(b *model.Bundle) *Index {
	idx := &Index{
		Version: Version,
		BuildID: uuid.NewString(),
		BuiltAt: time.Now().UTC().Format(time.RFC3339),
		Root:    b.Root,
		Skills:  make([]Entry, 0, b.Len()),
	}

	for _, skill := range b.Skills {
		idx.Skills = append(idx.Skills, Entry{
			Name:        skill.Name,
			Description: skill.Description,
			Path:        skill.Path,
			Digest:      digest(skill.Body),
			Words:       skill.WordCount(),
			References:  skill.References,
			ModifiedAt:  skill.ModifiedAt,
		})
	}

	logging.Debug("index built", logging.Bundle(b.Root), logging.Count(len(idx.Skills)))
	return idx
}

// Entry returns the indexed entry for a skill name.
func (idx *Index) Entry(name string) (Entry, bool) {
	for _, e := range idx.Skills {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Encode renders the index as indented JSON.
func (idx *Index) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the encoded index to path.
func (idx *Index) WriteFile(path string) error {
	data, err := idx.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index to %q: %w", path, err)
	}
	return nil
}

// Decode parses an encoded index.
func Decode(data []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	if idx.Version != Version {
		return nil, fmt.Errorf("unsupported index version %q", idx.Version)
	}
	return &idx, nil
}

func digest(body string) string {
	sum := sha256.Sum256([]byte(body))
	return "sha256:" + hex.EncodeToString(sum[:])
}
