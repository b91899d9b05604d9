// Package feedback turns two skill sets into short strengths, weaknesses,
// and recommendations for a resume.
package feedback

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
)

const (
	strengthsTemplate       = "Your resume strongly matches the required skills. Skills like %s are well-highlighted."
	weaknessesTemplate      = "Consider adding more details on %s to better align with the job description."
	recommendationsTemplate = "Tailor your resume further by emphasizing projects related to %s."

	strengthsPlaceholder       = "key skills"
	weaknessesPlaceholder      = "no specific skills"
	recommendationsPlaceholder = "relevant technologies"
)

// Default list sizes.
const (
	DefaultStrengths       = 3
	DefaultWeaknesses      = 2
	DefaultRecommendations = 2
)

// Options bounds how many skills each sentence names.
type Options struct {
	Strengths       int `mapstructure:"strengths" json:"strengths"`
	Weaknesses      int `mapstructure:"weaknesses" json:"weaknesses"`
	Recommendations int `mapstructure:"recommendations" json:"recommendations"`
}

// DefaultOptions returns the standard list sizes.
func DefaultOptions() Options {
	return Options{
		Strengths:       DefaultStrengths,
		Weaknesses:      DefaultWeaknesses,
		Recommendations: DefaultRecommendations,
	}
}

// withDefaults replaces non-positive sizes with the defaults.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Strengths <= 0 {
		o.Strengths = d.Strengths
	}
	if o.Weaknesses <= 0 {
		o.Weaknesses = d.Weaknesses
	}
	if o.Recommendations <= 0 {
		o.Recommendations = d.Recommendations
	}
	return o
}

// Feedback is the composed text for one analysis.
type Feedback struct {
	Strengths       string `json:"strengths"`
	Weaknesses      string `json:"weaknesses"`
	Recommendations string `json:"recommendations"`
}

// Composer builds Feedback with fixed list sizes. The zero value uses defaults.
type Composer struct {
	opts Options
}

// NewComposer creates a Composer. Non-positive sizes fall back to defaults.
func NewComposer(opts Options) *Composer {
	return &Composer{opts: opts.withDefaults()}
}

// Compose uses the default list sizes.
func Compose(resume, job skills.SkillSet, breakdown scoring.Breakdown) Feedback {
	return NewComposer(DefaultOptions()).Compose(resume, job, breakdown)
}

// Compose builds the three sentences. The breakdown is accepted for callers
// that have one but does not change the wording.
func (c *Composer) Compose(resume, job skills.SkillSet, _ scoring.Breakdown) Feedback {
	opts := c.opts.withDefaults()
	return Feedback{
		Strengths:       render(strengthsTemplate, Strengths(resume, job, opts.Strengths), strengthsPlaceholder),
		Weaknesses:      render(weaknessesTemplate, Weaknesses(resume, job, opts.Weaknesses), weaknessesPlaceholder),
		Recommendations: render(recommendationsTemplate, Recommendations(job, opts.Recommendations), recommendationsPlaceholder),
	}
}

// Strengths returns up to n resume skills that the job also asks for, in
// resume order.
func Strengths(resume, job skills.SkillSet, n int) []string {
	return take(resume.Items(), n, job.Contains)
}

// Weaknesses returns up to n job skills missing from the resume, in job order.
func Weaknesses(resume, job skills.SkillSet, n int) []string {
	return take(job.Items(), n, func(s string) bool { return !resume.Contains(s) })
}

// Recommendations returns the first n job skills.
func Recommendations(job skills.SkillSet, n int) []string {
	return take(job.Items(), n, func(string) bool { return true })
}

func take(items []string, n int, keep func(string) bool) []string {
	out := make([]string, 0, n)
	for _, item := range items {
		if len(out) >= n {
			break
		}
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func render(template string, list []string, placeholder string) string {
	subject := placeholder
	if len(list) > 0 {
		subject = strings.Join(list, ", ")
	}
	return fmt.Sprintf(template, subject)
}
