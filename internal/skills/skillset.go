// Package skills provides skill normalization, ordered skill sets, and the
// keyword vocabulary used when the classifier cannot be trusted.
package skills

import (
	"encoding/json"
	"strings"
)

// SkillSet is an ordered, deduplicated collection of skills.
// Membership is case-insensitive; the first spelling seen is the one kept.
type SkillSet struct {
	items []string
	index map[string]struct{}
}

// NewSkillSet builds a set from raw values, dropping blanks and duplicates.
func NewSkillSet(values ...string) SkillSet {
	var s SkillSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a skill if it is non-blank and not already present.
// Returns true when the set changed.
func (s *SkillSet) Add(value string) bool {
	skill := Normalize(value)
	if skill == "" {
		return false
	}
	key := Fold(skill)
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, exists := s.index[key]; exists {
		return false
	}
	s.index[key] = struct{}{}
	s.items = append(s.items, skill)
	return true
}

// Contains reports whether the set holds the skill, ignoring case.
func (s SkillSet) Contains(value string) bool {
	if s.index == nil {
		return false
	}
	_, ok := s.index[Fold(Normalize(value))]
	return ok
}

// Len returns the number of skills.
func (s SkillSet) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no skills.
func (s SkillSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the skills in insertion order.
func (s SkillSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Folded returns a new set with every skill lowercased.
func (s SkillSet) Folded() SkillSet {
	var out SkillSet
	for _, item := range s.items {
		out.Add(Fold(item))
	}
	return out
}

// MarshalJSON encodes the set as a plain JSON array, never null.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes a JSON array of strings into the set.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSkillSet(values...)
	return nil
}

// String joins the skills with ", ".
func (s SkillSet) String() string {
	return strings.Join(s.items, ", ")
}
