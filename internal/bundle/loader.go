// Package bundle discovers and loads skill bundles from disk.
//
// A bundle root contains one directory per skill. Each skill directory holds
// a SKILL.md with name/description front matter and an optional references/
// folder of deeper-dive documents. Reference bodies are not loaded with the
// bundle; use ReadReference when the content is actually needed.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/klauern/skillshelf/internal/frontmatter"
	"github.com/klauern/skillshelf/internal/logging"
	"github.com/klauern/skillshelf/internal/model"
)

// loadConcurrency caps the number of skill files parsed in parallel.
const loadConcurrency = 8

// Load discovers and parses every skill under root. Skills that fail to
// parse are logged and skipped; the rest of the bundle still loads.
func Load(root string) (*model.Bundle, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bundle root %q: %w", root, err)
	}

	paths, err := Discover(absRoot)
	if err != nil {
		return nil, err
	}

	logging.Debug("discovered skill files", logging.Bundle(absRoot), logging.Count(len(paths)))

	skills := make([]model.Skill, len(paths))
	var g errgroup.Group
	g.SetLimit(loadConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			skill, err := LoadSkill(path)
			if err != nil {
				logging.Warn("skipping unparsable skill file", logging.Path(path), logging.Err(err))
				return nil
			}
			skills[i] = skill
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := make([]model.Skill, 0, len(skills))
	for _, s := range skills {
		if s.Name != "" {
			loaded = append(loaded, s)
		}
	}

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Name < loaded[j].Name })

	return &model.Bundle{Root: absRoot, Skills: loaded}, nil
}

// LoadSkill parses a single SKILL.md file and attaches its references/
// listing.
func LoadSkill(path string) (model.Skill, error) {
	content, err := os.ReadFile(path) // #nosec G304 - path comes from bundle discovery
	if err != nil {
		return model.Skill{}, fmt.Errorf("failed to read %q: %w", path, err)
	}

	split := frontmatter.Split(content)
	fields := map[string]any{}
	if split.Found {
		fields, err = frontmatter.Parse(split)
		if err != nil {
			return model.Skill{}, fmt.Errorf("failed to parse front matter in %q: %w", path, err)
		}
	}

	skill := model.Skill{
		Name:        frontmatter.String(fields, "name"),
		Description: frontmatter.String(fields, "description"),
		License:     frontmatter.String(fields, "license"),
		Path:        path,
		Body:        strings.TrimSpace(strings.ReplaceAll(split.Body, "\r\n", "\n")),
		Metadata:    make(map[string]string),
	}

	// Name falls back to the directory name so lint can still report the
	// missing field against a nameable skill.
	if skill.Name == "" {
		skill.Name = filepath.Base(filepath.Dir(path))
	}

	known := map[string]bool{"name": true, "description": true, "license": true}
	for key, val := range fields {
		if known[key] {
			continue
		}
		if s, ok := val.(string); ok {
			skill.Metadata[key] = s
		} else {
			skill.Metadata[key] = fmt.Sprintf("%v", val)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return model.Skill{}, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	skill.ModifiedAt = info.ModTime()

	skill.References = listReferences(filepath.Dir(path))

	return skill, nil
}

// listReferences enumerates the references/ folder of a skill directory.
// Missing folders yield an empty listing.
func listReferences(skillDir string) []model.ReferenceFile {
	refsDir := filepath.Join(skillDir, "references")
	entries, err := os.ReadDir(refsDir)
	if err != nil {
		return nil
	}

	var refs []model.ReferenceFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		refs = append(refs, model.ReferenceFile{
			Path:  filepath.Join("references", entry.Name()),
			Title: titleFromFilename(entry.Name()),
			Size:  info.Size(),
		})
	}
	return refs
}

// ReadReference loads the body of a reference file on demand. The rel path
// must stay inside the skill directory.
func ReadReference(skill model.Skill, rel string) ([]byte, error) {
	if _, ok := skill.Reference(rel); !ok {
		return nil, fmt.Errorf("skill %q has no reference %q", skill.Name, rel)
	}

	path := filepath.Join(skill.Dir(), rel)
	cleaned, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reference path %q: %w", rel, err)
	}
	dir, err := filepath.Abs(skill.Dir())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve skill directory: %w", err)
	}
	if !strings.HasPrefix(cleaned, dir+string(filepath.Separator)) {
		return nil, fmt.Errorf("reference path %q escapes skill directory", rel)
	}

	data, err := os.ReadFile(cleaned) // #nosec G304 - containment checked above
	if err != nil {
		return nil, fmt.Errorf("failed to read reference %q: %w", rel, err)
	}
	return data, nil
}

// titleFromFilename turns "eager-loading.md" into "eager loading".
func titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
}
