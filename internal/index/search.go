package index

import (
	"sort"
	"strings"
)

// Match is a search hit with a relevance score.
type Match struct {
	Entry Entry   `json:"entry"`
	Score float64 `json:"score"`
}

// Search ranks index entries against a space-separated keyword query.
// Scoring is intentionally simple: name hits outweigh description hits, and
// every query term must match somewhere for an entry to qualify. This mirrors
// how a host decides activation from name/description alone.
func (idx *Index) Search(query string) []Match {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	var matches []Match
	for _, e := range idx.Skills {
		name := strings.ToLower(e.Name)
		desc := strings.ToLower(e.Description)

		score := 0.0
		qualified := true
		for _, term := range terms {
			switch {
			case name == term:
				score += 3
			case strings.Contains(name, term):
				score += 2
			case strings.Contains(desc, term):
				score += 1
			default:
				qualified = false
			}
			if !qualified {
				break
			}
		}
		if qualified {
			matches = append(matches, Match{Entry: e, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Entry.Name < matches[j].Entry.Name
	})
	return matches
}
