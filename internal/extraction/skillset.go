package extraction

import "sort"

// SkillSet collects canonical skill names without duplicates.
type SkillSet struct {
	skills map[string]struct{}
}

// NewSkillSet returns an empty set.
func NewSkillSet() *SkillSet {
	return &SkillSet{skills: make(map[string]struct{})}
}

// Add inserts a canonical name and reports whether it was new.
func (s *SkillSet) Add(canonical string) bool {
	if _, ok := s.skills[canonical]; ok {
		return false
	}
	s.skills[canonical] = struct{}{}
	return true
}

// Len returns the number of collected skills.
func (s *SkillSet) Len() int {
	return len(s.skills)
}

// List returns the collected canonical names, sorted.
func (s *SkillSet) List() []string {
	list := make([]string, 0, len(s.skills))
	for skill := range s.skills {
		list = append(list, skill)
	}
	sort.Strings(list)
	return list
}
