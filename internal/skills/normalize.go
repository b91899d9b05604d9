package skills

import (
	"strings"
	"unicode"
)

// Normalize trims a skill and collapses internal whitespace runs to one space.
// Case is preserved; use Fold for comparisons.
func Normalize(skill string) string {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ""
	}
	return strings.Join(strings.FieldsFunc(skill, unicode.IsSpace), " ")
}

// Fold returns the comparison key for a skill.
func Fold(skill string) string {
	return strings.ToLower(Normalize(skill))
}
