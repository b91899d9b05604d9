package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func createJob(t *testing.T, s *Server, req types.JobDescriptionRequest) types.JobDescription {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/jobs", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var job types.JobDescription
	require.NoError(t, json.NewDecoder(w.Body).Decode(&job))
	return job
}

func TestHandleCreateJob(t *testing.T) {
	s, _ := newTestServer(t)

	job := createJob(t, s, types.JobDescriptionRequest{
		Title:           "Go Developer",
		Description:     "Java and Spring Boot",
		RequiredSkills:  "Java",
		ExperienceLevel: "Senior",
	})

	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, "Go Developer", job.Title)
	assert.Equal(t, "Senior", job.ExperienceLevel)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestHandleCreateJob_Validation(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing title", `{"description": "Java"}`},
		{"title too long", `{"title": "` + strings.Repeat("x", 256) + `"}`},
		{"experience level too long", `{"title": "Dev", "experience_level": "` + strings.Repeat("x", 51) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			s.handleCreateJob(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeError(t, w))
		})
	}
}

func TestHandleUpdateJob(t *testing.T) {
	s, _ := newTestServer(t)
	job := createJob(t, s, types.JobDescriptionRequest{Title: "Dev", Description: "Java"})

	w := do(t, s, http.MethodPut, "/api/jobs/"+job.ID.String(), types.JobDescriptionRequest{
		Title:       "Senior Dev",
		Description: "Java and Scrum",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated types.JobDescription
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, job.ID, updated.ID)
	assert.Equal(t, "Senior Dev", updated.Title)
	assert.Equal(t, "Java and Scrum", updated.Description)
	assert.True(t, job.CreatedAt.Equal(updated.CreatedAt))

	w = do(t, s, http.MethodGet, "/api/jobs/"+job.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got types.JobDescription
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Senior Dev", got.Title)
}

func TestHandleUpdateJob_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodPut, "/api/jobs/"+uuid.NewString(), types.JobDescriptionRequest{Title: "Dev"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job description not found", decodeError(t, w))
}

func TestHandleListAndDeleteJobs(t *testing.T) {
	s, _ := newTestServer(t)
	first := createJob(t, s, types.JobDescriptionRequest{Title: "First"})
	createJob(t, s, types.JobDescriptionRequest{Title: "Second"})

	w := do(t, s, http.MethodGet, "/api/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var jobs []types.JobDescription
	require.NoError(t, json.NewDecoder(w.Body).Decode(&jobs))
	assert.Len(t, jobs, 2)

	path := "/api/jobs/" + first.ID.String()
	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, path, nil).Code)
}

func TestHandleGetJob_InvalidID(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	s.handleGetJob(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid job description ID", decodeError(t, w))
}

func TestHandleGetJob_MissingID(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/", nil)
	w := httptest.NewRecorder()

	s.handleGetJob(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing job description ID", decodeError(t, w))
}
