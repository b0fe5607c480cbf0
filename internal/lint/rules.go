package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauern/skillshelf/internal/bundle"
	"github.com/klauern/skillshelf/internal/frontmatter"
	"github.com/klauern/skillshelf/internal/logging"
	"github.com/klauern/skillshelf/internal/model"
)

// Rule identifiers.
const (
	RuleFrontMatter   = "front-matter"
	RuleReferences    = "references"
	RuleCodeFences    = "code-fences"
	RuleDirName       = "dir-name"
	RuleDuplicateName = "duplicate-name"
	RuleDescription   = "description-length"
	RuleOrphanRefs    = "orphan-references"
)

// Options configures a lint run.
type Options struct {
	// MaxDescription caps the description length; host assistants truncate
	// long activation strings. Zero uses DefaultMaxDescription.
	MaxDescription int
	// OrphanWarnings enables warnings for reference files never mentioned
	// in the SKILL.md body.
	OrphanWarnings bool
}

// DefaultMaxDescription is the longest description that survives display in
// a skill picker without truncation.
const DefaultMaxDescription = 1024

// DefaultOptions returns the standard lint configuration.
func DefaultOptions() Options {
	return Options{
		MaxDescription: DefaultMaxDescription,
		OrphanWarnings: true,
	}
}

// refPattern matches references/... paths mentioned in a SKILL.md body.
var refPattern = regexp.MustCompile(`references/[A-Za-z0-9._/-]+`)

// Run lints every skill in the bundle.
func Run(b *model.Bundle, opts Options) *Result {
	if opts.MaxDescription == 0 {
		opts.MaxDescription = DefaultMaxDescription
	}

	result := &Result{}

	seen := make(map[string]string) // name -> first path
	for _, skill := range b.Skills {
		lintFrontMatter(skill, opts, result)
		lintReferences(skill, result)
		lintFences(skill, result)
		lintDirName(skill, result)
		if opts.OrphanWarnings {
			lintOrphans(skill, result)
		}

		if first, dup := seen[skill.Name]; dup {
			result.Add(Finding{
				Rule:     RuleDuplicateName,
				Severity: SeverityError,
				Skill:    skill.Name,
				Path:     skill.Path,
				Message:  "duplicate skill name, first defined at " + first,
			})
		} else {
			seen[skill.Name] = skill.Path
		}
	}

	result.Sort()
	logging.Debug("lint finished", logging.Bundle(b.Root), logging.Count(len(result.Findings)))
	return result
}

// lintFrontMatter checks the name/description activation fields.
func lintFrontMatter(skill model.Skill, opts Options, result *Result) {
	content, err := os.ReadFile(skill.Path) // #nosec G304 - path comes from bundle discovery
	if err != nil {
		result.Add(Finding{
			Rule:     RuleFrontMatter,
			Severity: SeverityError,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  "cannot read skill file: " + err.Error(),
		})
		return
	}

	split := frontmatter.Split(content)
	if !split.Found {
		result.Add(Finding{
			Rule:     RuleFrontMatter,
			Severity: SeverityError,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  "missing front matter block",
		})
		return
	}

	fields, err := frontmatter.Parse(split)
	if err != nil {
		result.Add(Finding{
			Rule:     RuleFrontMatter,
			Severity: SeverityError,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  "unparsable front matter: " + err.Error(),
		})
		return
	}

	name := strings.TrimSpace(frontmatter.String(fields, "name"))
	if name == "" {
		result.Add(Finding{
			Rule:     RuleFrontMatter,
			Severity: SeverityError,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  "front matter field \"name\" is missing or empty",
		})
	} else if err := frontmatter.ValidateName(name); err != nil {
		result.Add(Finding{
			Rule:     RuleFrontMatter,
			Severity: SeverityError,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  err.Error(),
		})
	}

	desc := strings.TrimSpace(frontmatter.String(fields, "description"))
	if desc == "" {
		result.Add(Finding{
			Rule:     RuleFrontMatter,
			Severity: SeverityError,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  "front matter field \"description\" is missing or empty",
		})
	} else if len(desc) > opts.MaxDescription {
		result.Add(Finding{
			Rule:     RuleDescription,
			Severity: SeverityWarning,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  fmt.Sprintf("description exceeds %d characters and may be truncated by the host", opts.MaxDescription),
		})
	}
}

// lintReferences checks that every references/... path mentioned in the body
// exists on disk.
func lintReferences(skill model.Skill, result *Result) {
	mentions := refPattern.FindAllString(skill.Body, -1)
	checked := make(map[string]bool)
	for _, mention := range mentions {
		rel := strings.TrimRight(mention, "./")
		if checked[rel] {
			continue
		}
		checked[rel] = true

		if _, err := os.Stat(filepath.Join(skill.Dir(), rel)); err != nil {
			result.Add(Finding{
				Rule:     RuleReferences,
				Severity: SeverityError,
				Skill:    skill.Name,
				Path:     skill.Path,
				Message:  "referenced file does not exist: " + rel,
			})
		}
	}
}

// lintFences checks the SKILL.md body and every reference file for
// unterminated code fences.
func lintFences(skill model.Skill, result *Result) {
	if !fencesBalanced(skill.Body) {
		result.Add(Finding{
			Rule:     RuleCodeFences,
			Severity: SeverityError,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  "unterminated code fence",
		})
	}

	for _, ref := range skill.References {
		if !strings.HasSuffix(ref.Path, ".md") {
			continue
		}
		data, err := bundle.ReadReference(skill, ref.Path)
		if err != nil {
			continue
		}
		if !fencesBalanced(string(data)) {
			result.Add(Finding{
				Rule:     RuleCodeFences,
				Severity: SeverityError,
				Skill:    skill.Name,
				Path:     filepath.Join(skill.Dir(), ref.Path),
				Message:  "unterminated code fence",
			})
		}
	}
}

// lintDirName warns when the front matter name disagrees with the directory.
func lintDirName(skill model.Skill, result *Result) {
	dir := filepath.Base(skill.Dir())
	if skill.Name != dir {
		result.Add(Finding{
			Rule:     RuleDirName,
			Severity: SeverityWarning,
			Skill:    skill.Name,
			Path:     skill.Path,
			Message:  fmt.Sprintf("skill name %q does not match directory name %q", skill.Name, dir),
		})
	}
}

// lintOrphans warns about reference files the SKILL.md body never mentions.
// Hosts load references lazily via the body, so an unmentioned file is
// unreachable documentation.
func lintOrphans(skill model.Skill, result *Result) {
	for _, ref := range skill.References {
		if !strings.Contains(skill.Body, ref.Path) {
			result.Add(Finding{
				Rule:     RuleOrphanRefs,
				Severity: SeverityWarning,
				Skill:    skill.Name,
				Path:     filepath.Join(skill.Dir(), ref.Path),
				Message:  "reference file is never mentioned in SKILL.md",
			})
		}
	}
}

// fencesBalanced reports whether every opened code fence in the document is
// closed. A fence opens with a run of three or more backticks or tildes at
// line start (up to three spaces of indent) and closes with a run of the
// same character at least as long. While a fence is open, runs of the other
// character are body text.
func fencesBalanced(doc string) bool {
	var openChar byte
	openLen := 0

	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if len(line)-len(trimmed) > 3 {
			continue
		}

		ch, n := fenceRun(trimmed)
		if n < 3 {
			continue
		}

		if openLen == 0 {
			openChar = ch
			openLen = n
			continue
		}
		if ch == openChar && n >= openLen && strings.TrimSpace(trimmed[n:]) == "" {
			openChar = 0
			openLen = 0
		}
	}

	return openLen == 0
}

// fenceRun returns the fence character and run length at the start of a
// line, or (0, 0) when the line does not start with a fence character.
func fenceRun(line string) (byte, int) {
	if line == "" {
		return 0, 0
	}
	ch := line[0]
	if ch != '`' && ch != '~' {
		return 0, 0
	}
	n := 0
	for n < len(line) && line[n] == ch {
		n++
	}
	return ch, n
}
