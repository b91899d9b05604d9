package skills

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultTerms is the built-in vocabulary, in match order.
var defaultTerms = []string{
	"java",
	"spring",
	"spring boot",
	"scrum",
	"scrum master",
	"oracle certified",
	"node.js",
	"bootstrap",
	"php",
	"jquery",
	"jsf",
	"apache struts",
	"servlets",
	"jndi",
	"weblogic",
	"software engineering",
	"cisco",
	"problem-solving",
	"tutoring",
	"training",
}

// Vocabulary is an immutable, ordered list of known skill terms.
type Vocabulary struct {
	terms []string
}

// vocabularyFile is the on-disk YAML shape of a custom vocabulary.
type vocabularyFile struct {
	Skills []string `yaml:"skills"`
}

// DefaultVocabulary returns the built-in vocabulary.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(defaultTerms...)
}

// NewVocabulary builds a vocabulary from terms, folding case and dropping
// blanks and duplicates while keeping the given order.
func NewVocabulary(terms ...string) Vocabulary {
	set := NewSkillSet(terms...).Folded()
	return Vocabulary{terms: set.Items()}
}

// LoadVocabulary reads a YAML file of the form `skills: [a, b, ...]`.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}

	vocab := NewVocabulary(file.Skills...)
	if vocab.Len() == 0 {
		return Vocabulary{}, fmt.Errorf("vocabulary file %s has no skills", path)
	}
	return vocab, nil
}

// Terms returns a copy of the vocabulary terms.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Len returns the number of terms.
func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Match returns every term that occurs in text as a case-insensitive
// substring, in vocabulary order. The result depends only on text and v.
func (v Vocabulary) Match(text string) SkillSet {
	var found SkillSet
	if strings.TrimSpace(text) == "" {
		return found
	}

	lower := strings.ToLower(text)
	for _, term := range v.terms {
		if strings.Contains(lower, term) {
			found.Add(term)
		}
	}
	return found
}
