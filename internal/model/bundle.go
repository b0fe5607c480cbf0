package model

import "sort"

// Bundle is a loaded skill bundle: a root directory containing one or more
// skill directories.
type Bundle struct {
	Root   string  `json:"root"`
	Skills []Skill `json:"skills"`
}

// Skill returns the skill with the given name, or false if absent.
func (b *Bundle) Skill(name string) (Skill, bool) {
	for _, s := range b.Skills {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}

// Names returns the skill names in sorted order.
func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.Skills))
	for _, s := range b.Skills {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of skills in the bundle.
func (b *Bundle) Len() int {
	return len(b.Skills)
}
