// Package model defines the core types for skill bundles.
package model

import (
	"path/filepath"
	"time"
)

// Skill represents a single skill directory: a SKILL.md file plus its
// optional references/ folder.
type Skill struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Path        string            `json:"path"`
	Body        string            `json:"body,omitempty"`
	License     string            `json:"license,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	References  []ReferenceFile   `json:"references,omitempty"`
	ModifiedAt  time.Time         `json:"modified_at"`
}

// Dir returns the skill's directory (the parent of its SKILL.md).
func (s Skill) Dir() string {
	return filepath.Dir(s.Path)
}

// Reference returns the reference file with the given skill-relative path,
// e.g. "references/queries.md". The second return is false if no such
// reference exists.
func (s Skill) Reference(rel string) (ReferenceFile, bool) {
	for _, ref := range s.References {
		if ref.Path == rel {
			return ref, true
		}
	}
	return ReferenceFile{}, false
}

// WordCount returns the number of whitespace-separated words in the skill
// body. Reference bodies are not included; they load lazily.
func (s Skill) WordCount() int {
	return countWords(s.Body)
}

// ReferenceFile is a deeper-dive document under a skill's references/
// folder. Only metadata is held here; the body is read on demand.
type ReferenceFile struct {
	// Path is relative to the skill directory, e.g. "references/models.md".
	Path  string `json:"path"`
	Title string `json:"title,omitempty"`
	Size  int64  `json:"size"`
}

func countWords(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				n++
			}
			inWord = true
		}
	}
	return n
}
