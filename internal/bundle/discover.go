package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SkillFileName is the manifest file that marks a skill directory.
const SkillFileName = "SKILL.md"

// Discover returns the paths of all SKILL.md files under root, sorted.
// Symlinked directories are followed; cycles are detected and skipped.
// A missing root is not an error and yields no paths.
func Discover(root string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat bundle root %q: %w", root, err)
	}

	var found []string
	visited := make(map[string]bool)
	if err := walk(root, visited, &found); err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func walk(dir string, visited map[string]bool, found *[]string) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil // unresolvable entries are skipped, not fatal
	}
	if visited[real] {
		return nil
	}
	visited[real] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if err := walk(path, visited, found); err != nil {
				return err
			}
			continue
		}

		if entry.Name() == SkillFileName {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve %q: %w", path, err)
			}
			*found = append(*found, abs)
		}
	}

	return nil
}
