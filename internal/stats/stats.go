// Package stats summarizes the size and shape of a skill bundle.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/klauern/skillshelf/internal/model"
	"github.com/klauern/skillshelf/internal/ui"
)

// SkillStats is the per-skill summary.
type SkillStats struct {
	Name          string `json:"name"`
	Words         int    `json:"words"`
	References    int    `json:"references"`
	ReferenceSize int64  `json:"reference_size"`
}

// BundleStats is the whole-bundle summary.
type BundleStats struct {
	Root          string       `json:"root"`
	SkillCount    int          `json:"skill_count"`
	Words         int          `json:"words"`
	References    int          `json:"references"`
	ReferenceSize int64        `json:"reference_size"`
	Skills        []SkillStats `json:"skills"`
}

// Collect computes statistics for a loaded bundle.
func Collect(b *model.Bundle) BundleStats {
	stats := BundleStats{
		Root:       b.Root,
		SkillCount: b.Len(),
		Skills:     make([]SkillStats, 0, b.Len()),
	}

	for _, skill := range b.Skills {
		s := SkillStats{
			Name:       skill.Name,
			Words:      skill.WordCount(),
			References: len(skill.References),
		}
		for _, ref := range skill.References {
			s.ReferenceSize += ref.Size
		}

		stats.Words += s.Words
		stats.References += s.References
		stats.ReferenceSize += s.ReferenceSize
		stats.Skills = append(stats.Skills, s)
	}

	sort.Slice(stats.Skills, func(i, j int) bool {
		return stats.Skills[i].Name < stats.Skills[j].Name
	})
	return stats
}

// Render writes a human-readable report.
func (s BundleStats) Render(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", ui.Bold("Bundle:"), s.Root)
	fmt.Fprintf(w, "  skills:     %d\n", s.SkillCount)
	fmt.Fprintf(w, "  words:      %s\n", humanize.Comma(int64(s.Words)))
	fmt.Fprintf(w, "  references: %d (%s)\n", s.References, humanize.Bytes(uint64(s.ReferenceSize)))

	if len(s.Skills) == 0 {
		return
	}

	fmt.Fprintln(w)
	tbl := ui.NewTable("NAME", "WORDS", "REFS", "REF SIZE")
	for _, skill := range s.Skills {
		tbl.AddRow(
			skill.Name,
			humanize.Comma(int64(skill.Words)),
			fmt.Sprintf("%d", skill.References),
			humanize.Bytes(uint64(skill.ReferenceSize)),
		)
	}
	tbl.Render(w)
}
