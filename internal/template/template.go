// Package template scaffolds new skill directories from built-in templates.
package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/klauern/skillshelf/internal/frontmatter"
)

// Kind identifies a built-in skill template.
type Kind string

const (
	// Framework is for framework/library convention skills (the common case:
	// a SKILL.md overview plus topic reference files).
	Framework Kind = "framework"
	// Guide is for single-document how-to skills without references.
	Guide Kind = "guide"
)

// Data holds the values rendered into a template.
type Data struct {
	Name        string
	Description string
	License     string
	References  []string
}

// Generator renders skill scaffolding.
type Generator struct {
	templates map[Kind]*template.Template
}

// New creates a generator with the built-in templates loaded.
func New() (*Generator, error) {
	g := &Generator{templates: make(map[Kind]*template.Template)}
	for kind, text := range map[Kind]string{
		Framework: frameworkTemplate,
		Guide:     guideTemplate,
	} {
		tmpl, err := template.New(string(kind)).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", kind, err)
		}
		g.templates[kind] = tmpl
	}
	return g, nil
}

// Render produces SKILL.md content for the given kind and data.
func (g *Generator) Render(kind Kind, data Data) (string, error) {
	tmpl, ok := g.templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown template %q", kind)
	}
	if err := frontmatter.ValidateName(data.Name); err != nil {
		return "", err
	}
	if data.Description == "" {
		return "", fmt.Errorf("description is required")
	}
	if data.License == "" {
		data.License = "MIT"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	// Anything the generator emits must pass its own front matter parse.
	out := buf.String()
	split := frontmatter.Split([]byte(out))
	if !split.Found {
		return "", fmt.Errorf("generated content is missing front matter")
	}
	if _, err := frontmatter.Parse(split); err != nil {
		return "", fmt.Errorf("generated content has invalid front matter: %w", err)
	}

	return out, nil
}

// Scaffold writes a new skill directory under root: SKILL.md, plus a stub
// for each reference file. Refuses to overwrite an existing skill.
func (g *Generator) Scaffold(root string, kind Kind, data Data) (string, error) {
	content, err := g.Render(kind, data)
	if err != nil {
		return "", err
	}

	skillDir := filepath.Join(root, data.Name)
	if _, err := os.Stat(filepath.Join(skillDir, "SKILL.md")); err == nil {
		return "", fmt.Errorf("skill %q already exists at %s", data.Name, skillDir)
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create skill directory: %w", err)
	}

	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write SKILL.md: %w", err)
	}

	for _, ref := range data.References {
		refPath := filepath.Join(skillDir, "references", ref)
		if err := os.MkdirAll(filepath.Dir(refPath), 0o755); err != nil {
			return "", fmt.Errorf("failed to create references directory: %w", err)
		}
		stub := fmt.Sprintf("# %s\n\nTODO: document %s for %s.\n", refTitle(ref), refTitle(ref), data.Name)
		if err := os.WriteFile(refPath, []byte(stub), 0o644); err != nil {
			return "", fmt.Errorf("failed to write reference stub %q: %w", ref, err)
		}
	}

	return skillPath, nil
}

// Kinds returns the available template kinds.
func (g *Generator) Kinds() []string {
	kinds := make([]string, 0, len(g.templates))
	for k := range g.templates {
		kinds = append(kinds, string(k))
	}
	return kinds
}

// ParseKind parses a user-supplied template kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "framework", "":
		return Framework, nil
	case "guide":
		return Guide, nil
	default:
		return "", fmt.Errorf("unknown template kind %q (expected framework or guide)", s)
	}
}

func refTitle(ref string) string {
	base := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	return strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
}
