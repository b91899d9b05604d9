// Package types provides the entities shared by the analyzer's storage,
// HTTP, and CLI layers.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCompany is stored on every analysis; jobs carry no company.
const DefaultCompany = "N/A"

// AnalysisResult is the persisted record of one analysis. It is written once
// and never updated.
type AnalysisResult struct {
	ID              uuid.UUID `json:"id"`
	ResumeID        uuid.UUID `json:"resume_id"`
	JobID           uuid.UUID `json:"job_description_id"`
	JobTitle        string    `json:"job_title"`
	Company         string    `json:"company"`
	Score           float64   `json:"score"` // fraction in [0, 1]
	Strengths       string    `json:"strengths"`
	Weaknesses      string    `json:"weaknesses"`
	Recommendations string    `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}
