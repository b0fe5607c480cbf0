package marketplace

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/klauern/skillshelf/internal/bundle"
	"github.com/klauern/skillshelf/internal/logging"
	"github.com/klauern/skillshelf/internal/model"
)

// PackageOptions configures zip packaging.
type PackageOptions struct {
	// Name is the marketplace listing name. Defaults to the root's basename.
	Name string
	// Version is the listing version. Defaults to "0.1.0".
	Version string
	// Description is the listing description.
	Description string
	// Progress enables a terminal progress bar during packaging.
	Progress io.Writer
}

// Package writes the bundle as a zip to w: marketplace.json first, then each
// skill directory (SKILL.md plus references/). Returns the manifest written.
func Package(b *model.Bundle, w io.Writer, opts PackageOptions) (*Manifest, error) {
	if b.Len() == 0 {
		return nil, fmt.Errorf("bundle at %q contains no skills", b.Root)
	}
	if opts.Name == "" {
		opts.Name = filepath.Base(b.Root)
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}

	manifest := NewManifest(opts.Name, opts.Version, opts.Description, b)
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	zw := zip.NewWriter(w)

	manifestData, err := manifest.Encode()
	if err != nil {
		return nil, err
	}
	if err := writeEntry(zw, ManifestName, manifestData); err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(b.Len(),
			progressbar.OptionSetDescription("Packaging skills"),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(15),
		)
	}

	for _, skill := range b.Skills {
		if err := addSkill(zw, skill); err != nil {
			return nil, err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}

	logging.Info("bundle packaged", logging.Bundle(b.Root), logging.Count(b.Len()))
	return manifest, nil
}

func addSkill(zw *zip.Writer, skill model.Skill) error {
	content, err := os.ReadFile(skill.Path) // #nosec G304 - path comes from bundle discovery
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", skill.Path, err)
	}
	if err := writeEntry(zw, skill.Name+"/SKILL.md", content); err != nil {
		return err
	}

	for _, ref := range skill.References {
		data, err := bundle.ReadReference(skill, ref.Path)
		if err != nil {
			return fmt.Errorf("failed to read reference %q of %q: %w", ref.Path, skill.Name, err)
		}
		name := skill.Name + "/" + filepath.ToSlash(ref.Path)
		if err := writeEntry(zw, name, data); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create zip entry %q: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write zip entry %q: %w", name, err)
	}
	return nil
}

// Extract unpacks a packaged bundle zip into targetDir and returns its
// manifest. Entries that would escape targetDir are rejected.
func Extract(path, targetDir string) (*Manifest, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", path, err)
	}
	defer zr.Close()

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target %q: %w", targetDir, err)
	}

	var manifest *Manifest
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		dest := filepath.Join(absTarget, filepath.FromSlash(entry.Name))
		if !strings.HasPrefix(dest, absTarget+string(filepath.Separator)) {
			return nil, fmt.Errorf("archive entry %q escapes target directory", entry.Name)
		}

		data, err := readZipEntry(entry)
		if err != nil {
			return nil, err
		}

		if entry.Name == ManifestName {
			var m Manifest
			if err := json.Unmarshal(data, &m); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", ManifestName, err)
			}
			manifest = &m
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %q: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %q: %w", dest, err)
		}
	}

	if manifest == nil {
		return nil, fmt.Errorf("archive %q is missing %s", path, ManifestName)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("archive %q has invalid manifest: %w", path, err)
	}
	return manifest, nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry %q: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive entry %q: %w", entry.Name, err)
	}
	return data, nil
}
