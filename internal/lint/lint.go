// Package lint implements documentation-integrity checks for skill bundles.
package lint

import (
	"fmt"
	"sort"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single lint result tied to a file.
type Finding struct {
	// Rule is the stable rule identifier, e.g. "front-matter".
	Rule string `json:"rule"`
	// Severity is error or warning.
	Severity Severity `json:"severity"`
	// Skill names the skill the finding belongs to.
	Skill string `json:"skill"`
	// Path is the file the finding points at.
	Path string `json:"path"`
	// Message describes the problem.
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", f.Severity, f.Path, f.Message, f.Rule)
}

// Result aggregates findings across a bundle.
type Result struct {
	Findings []Finding `json:"findings"`
}

// Add appends a finding.
func (r *Result) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// Errors returns the error-severity findings.
func (r *Result) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity findings.
func (r *Result) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// OK reports whether the bundle passed: no error-severity findings.
// Warnings do not fail a lint run.
func (r *Result) OK() bool {
	return len(r.Errors()) == 0
}

// Summary returns a one-line human-readable result.
func (r *Result) Summary() string {
	errs, warns := len(r.Errors()), len(r.Warnings())
	if errs == 0 && warns == 0 {
		return "all checks passed"
	}
	if errs == 0 {
		return fmt.Sprintf("passed with %d warning(s)", warns)
	}
	return fmt.Sprintf("failed: %d error(s), %d warning(s)", errs, warns)
}

// Sort orders findings by path, then rule, for stable output.
func (r *Result) Sort() {
	sort.Slice(r.Findings, func(i, j int) bool {
		if r.Findings[i].Path != r.Findings[j].Path {
			return r.Findings[i].Path < r.Findings[j].Path
		}
		return r.Findings[i].Rule < r.Findings[j].Rule
	})
}
