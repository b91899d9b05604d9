// Package extraction turns free text into skill sets. A remote classifier is
// tried first; when it fails, times out, or answers with nothing usable the
// extractor falls back to vocabulary matching and reports why.
package extraction

import (
	"github.com/jonathan/resume-analyzer/internal/skills"
)

// Reason explains why an extraction fell back to vocabulary matching.
type Reason string

const (
	ReasonEmptyInput     Reason = "empty_input"
	ReasonTimeout        Reason = "timeout"
	ReasonTransportError Reason = "transport_error"
	ReasonBadStatus      Reason = "bad_status"
	ReasonParseError     Reason = "parse_error"
	ReasonEmptyResult    Reason = "empty_result"
)

// Source names for diagnostics and metrics.
const (
	SourceClassified = "classified"
	SourceFallback   = "fallback"
)

// Outcome is the result of an extraction: either Classified or Fallback.
// Both variants carry a usable skill set.
type Outcome interface {
	Skills() skills.SkillSet
	outcome()
}

// Classified holds skills proposed by the classifier, case-folded and
// deduplicated in the order received.
type Classified struct {
	Found skills.SkillSet
}

// Fallback holds skills matched from the vocabulary after the classifier
// path was skipped or failed. Cause is the underlying error, if any.
type Fallback struct {
	Found  skills.SkillSet
	Reason Reason
	Cause  error
}

func (c Classified) Skills() skills.SkillSet { return c.Found }
func (f Fallback) Skills() skills.SkillSet   { return f.Found }

func (Classified) outcome() {}
func (Fallback) outcome()   {}

// Diagnostic is the caller-facing summary of an Outcome.
type Diagnostic struct {
	Source string `json:"source"`
	Reason Reason `json:"reason,omitempty"`
}

// Describe summarizes an outcome without its skills.
func Describe(o Outcome) Diagnostic {
	switch v := o.(type) {
	case Classified:
		return Diagnostic{Source: SourceClassified}
	case Fallback:
		return Diagnostic{Source: SourceFallback, Reason: v.Reason}
	default:
		return Diagnostic{}
	}
}
