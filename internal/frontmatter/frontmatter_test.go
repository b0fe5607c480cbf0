package frontmatter

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := map[string]struct {
		content   string
		wantFound bool
		wantTOML  bool
		wantRaw   string
		wantBody  string
	}{
		"yaml front matter": {
			content:   "---\nname: laravel-12\n---\n# Laravel\n",
			wantFound: true,
			wantRaw:   "name: laravel-12",
			wantBody:  "# Laravel\n",
		},
		"toml front matter": {
			content:   "+++\nname = \"tailwind-v4\"\n+++\nBody here\n",
			wantFound: true,
			wantTOML:  true,
			wantRaw:   "name = \"tailwind-v4\"",
			wantBody:  "Body here\n",
		},
		"windows line endings": {
			content:   "---\r\nname: pest-testing\r\n---\r\nBody\r\n",
			wantFound: true,
			wantRaw:   "name: pest-testing",
			wantBody:  "Body\r\n",
		},
		"empty block": {
			content:   "---\n---\nBody\n",
			wantFound: true,
			wantRaw:   "",
			wantBody:  "Body\n",
		},
		"no front matter": {
			content:  "# Just a heading\n",
			wantBody: "# Just a heading\n",
		},
		"unterminated block is body text": {
			content:  "---\nname: broken\nno closing delimiter\n",
			wantBody: "---\nname: broken\nno closing delimiter\n",
		},
		"delimiter not on first line": {
			content:  "\n---\nname: x\n---\n",
			wantBody: "\n---\nname: x\n---\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := Split([]byte(tt.content))
			if r.Found != tt.wantFound {
				t.Fatalf("Found = %v, want %v", r.Found, tt.wantFound)
			}
			if r.TOML != tt.wantTOML {
				t.Errorf("TOML = %v, want %v", r.TOML, tt.wantTOML)
			}
			if string(r.Raw) != tt.wantRaw {
				t.Errorf("Raw = %q, want %q", r.Raw, tt.wantRaw)
			}
			if r.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", r.Body, tt.wantBody)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		content  string
		wantName string
		wantDesc string
		wantErr  bool
	}{
		"yaml fields": {
			content:  "---\nname: laravel-12\ndescription: Laravel 12 conventions\n---\n",
			wantName: "laravel-12",
			wantDesc: "Laravel 12 conventions",
		},
		"toml fields": {
			content:  "+++\nname = \"pest-testing\"\ndescription = \"Pest v4 testing\"\n+++\n",
			wantName: "pest-testing",
			wantDesc: "Pest v4 testing",
		},
		"invalid yaml": {
			content: "---\nname: [unclosed\n---\n",
			wantErr: true,
		},
		"empty block yields empty map": {
			content: "---\n---\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fields, err := Parse(Split([]byte(tt.content)))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := String(fields, "name"); got != tt.wantName {
				t.Errorf("name = %q, want %q", got, tt.wantName)
			}
			if got := String(fields, "description"); got != tt.wantDesc {
				t.Errorf("description = %q, want %q", got, tt.wantDesc)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	fields, err := Parse(Split([]byte("---\ntags:\n  - php\n  - laravel\n---\n")))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := Strings(fields, "tags")
	if len(got) != 2 || got[0] != "php" || got[1] != "laravel" {
		t.Errorf("Strings(tags) = %v, want [php laravel]", got)
	}
	if Strings(fields, "missing") != nil {
		t.Error("Strings(missing) should be nil")
	}
}

func TestValidateName(t *testing.T) {
	tests := map[string]struct {
		skillName string
		wantErr   bool
	}{
		"simple name":         {skillName: "laravel-12"},
		"underscores allowed": {skillName: "pest_testing"},
		"empty":               {skillName: "", wantErr: true},
		"uppercase":           {skillName: "Laravel", wantErr: true},
		"spaces":              {skillName: "laravel 12", wantErr: true},
		"trailing whitespace": {skillName: "laravel-12 ", wantErr: true},
		"path separator":      {skillName: "laravel/12", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateName(tt.skillName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.skillName, err, tt.wantErr)
			}
		})
	}
}

func TestSplit_LargeBody(t *testing.T) {
	body := strings.Repeat("content line\n", 500)
	r := Split([]byte("---\nname: big\n---\n" + body))
	if !r.Found {
		t.Fatal("front matter not found")
	}
	if r.Body != body {
		t.Error("body mismatch for large document")
	}
}
