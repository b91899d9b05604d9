package types

import (
	"time"

	"github.com/google/uuid"
)

// JobDescription is a job posting the resume is scored against.
// Description is the text used for skill extraction.
type JobDescription struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RequiredSkills  string    `json:"required_skills,omitempty"`
	PreferredSkills string    `json:"preferred_skills,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// JobDescriptionRequest is the create/update payload for a job description.
type JobDescriptionRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	Description     string `json:"description"`
	RequiredSkills  string `json:"required_skills,omitempty"`
	PreferredSkills string `json:"preferred_skills,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty" validate:"max=50"`
}

// Validate validates the JobDescriptionRequest using the validator.
func (r *JobDescriptionRequest) Validate() error {
	return validate.Struct(r)
}

// Apply copies the request fields onto job, leaving ID and CreatedAt alone.
func (r *JobDescriptionRequest) Apply(job *JobDescription) {
	job.Title = r.Title
	job.Description = r.Description
	job.RequiredSkills = r.RequiredSkills
	job.PreferredSkills = r.PreferredSkills
	job.ExperienceLevel = r.ExperienceLevel
}
