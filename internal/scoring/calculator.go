// Package scoring computes how much of a job's skill set a resume covers.
package scoring

import "github.com/jonathan/resume-analyzer/internal/skills"

// Breakdown is the result of comparing two skill sets.
// Total is the job set size and Matched never exceeds it.
type Breakdown struct {
	Matched    int     `json:"matched"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Fraction returns Percentage scaled to [0, 1].
func (b Breakdown) Fraction() float64 {
	return b.Percentage / 100.0
}

// Calculate scores resume against job. A job with no skills is a full match;
// otherwise the score is the share of job skills present in the resume,
// compared case-insensitively and exactly.
func Calculate(resume, job skills.SkillSet) Breakdown {
	if job.IsEmpty() {
		return Breakdown{Matched: 0, Total: 0, Percentage: 100.0}
	}
	if resume.IsEmpty() {
		return Breakdown{Matched: 0, Total: job.Len(), Percentage: 0.0}
	}

	matched := 0
	for _, skill := range job.Items() {
		if resume.Contains(skill) {
			matched++
		}
	}

	return Breakdown{
		Matched:    matched,
		Total:      job.Len(),
		Percentage: float64(matched) / float64(job.Len()) * 100.0,
	}
}
