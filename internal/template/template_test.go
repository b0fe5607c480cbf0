package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/skillshelf/internal/bundle"
	"github.com/klauern/skillshelf/internal/lint"
)

func TestRender(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := map[string]struct {
		kind    Kind
		data    Data
		wantErr bool
		want    []string
	}{
		"framework skill": {
			kind: Framework,
			data: Data{
				Name:        "laravel-12",
				Description: "Laravel 12 backend conventions",
				References:  []string{"eloquent.md", "validation.md"},
			},
			want: []string{
				"name: laravel-12",
				"description: Laravel 12 backend conventions",
				"license: MIT",
				"references/eloquent.md",
				"references/validation.md",
			},
		},
		"guide skill": {
			kind: Guide,
			data: Data{Name: "upgrade-guide", Description: "How to upgrade"},
			want: []string{"name: upgrade-guide", "## Steps"},
		},
		"invalid name": {
			kind:    Framework,
			data:    Data{Name: "Bad Name", Description: "d"},
			wantErr: true,
		},
		"missing description": {
			kind:    Framework,
			data:    Data{Name: "ok-name"},
			wantErr: true,
		},
		"unknown kind": {
			kind:    Kind("nope"),
			data:    Data{Name: "ok-name", Description: "d"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := g.Render(tt.kind, tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestScaffold(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	root := t.TempDir()
	skillPath, err := g.Scaffold(root, Framework, Data{
		Name:        "tailwind-v4",
		Description: "Tailwind CSS v4 styling",
		References:  []string{"theme.md"},
	})
	if err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	if skillPath != filepath.Join(root, "tailwind-v4", "SKILL.md") {
		t.Errorf("skillPath = %q", skillPath)
	}
	if _, err := os.Stat(filepath.Join(root, "tailwind-v4", "references", "theme.md")); err != nil {
		t.Errorf("reference stub missing: %v", err)
	}

	// Scaffolding twice must not clobber.
	if _, err := g.Scaffold(root, Framework, Data{Name: "tailwind-v4", Description: "d"}); err == nil {
		t.Error("expected error when skill already exists")
	}
}

func TestScaffold_OutputPassesLint(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	root := t.TempDir()
	if _, err := g.Scaffold(root, Framework, Data{
		Name:        "pest-testing",
		Description: "Pest v4 testing conventions",
		References:  []string{"browser.md", "datasets.md"},
	}); err != nil {
		t.Fatalf("Scaffold() error = %v", err)
	}

	b, err := bundle.Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	result := lint.Run(b, lint.DefaultOptions())
	if !result.OK() {
		t.Errorf("scaffolded skill fails lint: %v", result.Errors())
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    Kind
		wantErr bool
	}{
		"framework":         {input: "framework", want: Framework},
		"guide":             {input: "guide", want: Guide},
		"empty defaults":    {input: "", want: Framework},
		"case insensitive":  {input: "GUIDE", want: Guide},
		"unknown":           {input: "wizard", wantErr: true},
		"surrounding space": {input: " framework ", want: Framework},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
