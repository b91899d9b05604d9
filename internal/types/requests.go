package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AnalysisRequest asks for one resume to be scored against one job.
type AnalysisRequest struct {
	ResumeID string `json:"resume_id" validate:"required,uuid"`
	JobID    string `json:"job_description_id" validate:"required,uuid"`
}

// Validate validates the AnalysisRequest using the validator.
func (r *AnalysisRequest) Validate() error {
	return validate.Struct(r)
}
