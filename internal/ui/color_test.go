package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestStatusHelpers(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tests := map[string]struct {
		fn   func(string) string
		msg  string
		want string
	}{
		"success with message": {fn: StatusSuccess, msg: "3 skills", want: "✓ 3 skills"},
		"success bare":         {fn: StatusSuccess, msg: "", want: "✓"},
		"error with message":   {fn: StatusError, msg: "missing name", want: "✗ missing name"},
		"warning with message": {fn: StatusWarning, msg: "long description", want: "⚠ long description"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.fn(tt.msg); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorToggle(t *testing.T) {
	DisableColors()
	if IsColorEnabled() {
		t.Error("colors should be disabled after DisableColors")
	}
	EnableColors()
	if !IsColorEnabled() {
		t.Error("colors should be enabled after EnableColors")
	}
}

func TestTable_Render(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tbl := NewTable("NAME", "DESCRIPTION")
	tbl.AddRow("laravel-12", "Laravel 12 backend conventions")
	tbl.AddRow("tailwind-v4", "Tailwind CSS v4 styling")

	var buf bytes.Buffer
	tbl.Render(&buf)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "laravel-12") || !strings.Contains(lines[1], "Laravel 12") {
		t.Errorf("row line = %q", lines[1])
	}
	// Name column is padded to the widest name.
	if !strings.Contains(lines[2], "tailwind-v4  ") {
		t.Errorf("expected padded name column, got %q", lines[2])
	}
}

func TestTable_TruncatesLastColumn(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tbl := NewTable("NAME", "DESCRIPTION")
	tbl.width = 40
	tbl.AddRow("pest-testing", strings.Repeat("browser testing ", 20))

	var buf bytes.Buffer
	tbl.Render(&buf)

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if len(line) > 60 {
			t.Errorf("line exceeds width budget: %d chars: %q", len(line), line)
		}
	}
}
