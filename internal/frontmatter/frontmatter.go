// Package frontmatter splits and parses the metadata block at the top of a
// SKILL.md file. YAML blocks are delimited by ---, TOML blocks by +++.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Result contains the split front matter and remaining document body.
type Result struct {
	// Raw contains the raw front matter bytes, without delimiters.
	Raw []byte
	// Body contains the document content after the front matter block.
	Body string
	// Found indicates whether a complete front matter block was present.
	Found bool
	// TOML indicates the block used +++ delimiters.
	TOML bool
}

// Split extracts the front matter block from content. A block must start on
// the first line and be closed by a matching delimiter line; an unclosed
// block is treated as plain body text.
func Split(content []byte) Result {
	if delim, isTOML := openingDelimiter(content); delim != nil {
		if r, ok := extract(content, delim); ok {
			r.TOML = isTOML
			return r
		}
	}
	return Result{Body: string(content)}
}

func openingDelimiter(content []byte) ([]byte, bool) {
	switch {
	case bytes.HasPrefix(content, []byte("---\n")), bytes.HasPrefix(content, []byte("---\r\n")):
		return []byte("---"), false
	case bytes.HasPrefix(content, []byte("+++\n")), bytes.HasPrefix(content, []byte("+++\r\n")):
		return []byte("+++"), true
	}
	return nil, false
}

func extract(content, delim []byte) (Result, bool) {
	rest := content[len(delim):]
	rest = trimLeadingNewline(rest)

	var raw []byte
	var bodyStart int

	if bytes.HasPrefix(rest, delim) {
		// Empty block: ---\n---\n
		raw = []byte{}
		bodyStart = len(delim)
	} else if idx := bytes.Index(rest, append([]byte("\n"), delim...)); idx != -1 {
		raw = rest[:idx]
		bodyStart = idx + 1 + len(delim)
	} else if idx := bytes.Index(rest, append([]byte("\r\n"), delim...)); idx != -1 {
		raw = rest[:idx]
		bodyStart = idx + 2 + len(delim)
	} else {
		return Result{}, false
	}

	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	raw = bytes.TrimRight(raw, "\r")

	body := trimLeadingNewline(rest[min(bodyStart, len(rest)):])

	return Result{Raw: raw, Body: string(body), Found: true}, true
}

func trimLeadingNewline(b []byte) []byte {
	if bytes.HasPrefix(b, []byte("\r\n")) {
		return b[2:]
	}
	if bytes.HasPrefix(b, []byte("\n")) {
		return b[1:]
	}
	return b
}

// Parse decodes the front matter in a Result into a generic map. YAML and
// TOML blocks are both supported; an empty block yields an empty map.
func Parse(r Result) (map[string]any, error) {
	if len(r.Raw) == 0 {
		return map[string]any{}, nil
	}

	fields := make(map[string]any)
	if r.TOML {
		if err := toml.Unmarshal(r.Raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to parse TOML front matter: %w", err)
		}
		return fields, nil
	}
	if err := yaml.Unmarshal(r.Raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse YAML front matter: %w", err)
	}
	return fields, nil
}

// String extracts a string field from parsed front matter.
func String(fields map[string]any, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Strings extracts a string-slice field from parsed front matter.
func Strings(fields map[string]any, key string) []string {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ValidateName checks that a skill name is usable as a directory name and an
// activation key: lowercase alphanumerics and hyphens, no surrounding
// whitespace.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("skill name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("skill name cannot have leading/trailing whitespace: %q", name)
	}
	for _, r := range name {
		if !isNameChar(r) {
			return fmt.Errorf("skill name contains invalid character %q: %q", r, name)
		}
	}
	return nil
}

func isNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_'
}
