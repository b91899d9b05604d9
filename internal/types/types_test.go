//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisRequest_Validate(t *testing.T) {
	id := uuid.New().String()

	tests := []struct {
		name    string
		request AnalysisRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: AnalysisRequest{ResumeID: id, JobID: uuid.New().String()},
		},
		{
			name:    "missing resume id",
			request: AnalysisRequest{JobID: id},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "missing job id",
			request: AnalysisRequest{ResumeID: id},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "malformed id",
			request: AnalysisRequest{ResumeID: "42", JobID: id},
			wantErr: true,
			errMsg:  "uuid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobDescriptionRequest_Validate(t *testing.T) {
	assert.NoError(t, (&JobDescriptionRequest{Title: "Backend Engineer"}).Validate())

	err := (&JobDescriptionRequest{Description: "text"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	err = (&JobDescriptionRequest{Title: strings.Repeat("x", 256)}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max")
}

func TestJobDescriptionRequest_Apply(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	job := JobDescription{ID: id, Title: "old", CreatedAt: created}

	req := JobDescriptionRequest{
		Title:          "Platform Engineer",
		Description:    "Go and Kubernetes",
		RequiredSkills: "go, kubernetes",
	}
	req.Apply(&job)

	assert.Equal(t, id, job.ID)
	assert.Equal(t, created, job.CreatedAt)
	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "Go and Kubernetes", job.Description)
	assert.Equal(t, "go, kubernetes", job.RequiredSkills)
}

func TestAnalysisResult_JSONFieldNames(t *testing.T) {
	result := AnalysisResult{
		ID:       uuid.New(),
		ResumeID: uuid.New(),
		JobID:    uuid.New(),
		JobTitle: "Engineer",
		Company:  DefaultCompany,
		Score:    0.5,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "resume_id", "job_description_id", "job_title", "company", "score", "created_at"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "N/A", raw["company"])
}
