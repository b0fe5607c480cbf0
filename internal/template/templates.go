package template

// frameworkTemplate scaffolds a convention skill: an overview with a
// references/ folder for topic deep-dives.
const frameworkTemplate = `---
name: {{.Name}}
description: {{.Description}}
license: {{.License}}
---

# {{.Name}}

{{.Description}}

## When to use this skill

Load this skill when working on code that uses {{.Name}}. The sections below
cover the defaults; deeper topics live under references/.

## Conventions

- Follow the framework's current major version idioms.
- Prefer the framework's built-in solution before reaching for a package.
{{if .References}}
## References
{{range .References}}
- references/{{.}}{{end}}
{{end}}`

// guideTemplate scaffolds a single-document how-to skill.
const guideTemplate = `---
name: {{.Name}}
description: {{.Description}}
license: {{.License}}
---

# {{.Name}}

{{.Description}}

## Steps

1. Describe the starting point.
2. Describe the change to make.
3. Describe how to verify it.
`
