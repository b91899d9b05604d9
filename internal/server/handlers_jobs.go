package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// decodeJobRequest reads and validates a job description payload.
func (s *Server) decodeJobRequest(w http.ResponseWriter, r *http.Request) (*types.JobDescriptionRequest, bool) {
	var req types.JobDescriptionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON request body")
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return nil, false
	}
	return &req, true
}

// handleCreateJob handles POST /api/jobs
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeJobRequest(w, r)
	if !ok {
		return
	}

	job := &types.JobDescription{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	req.Apply(job)

	if err := s.store.CreateJob(r.Context(), job); err != nil {
		s.writeError(w, err, "Failed to create job description")
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs handles GET /api/jobs
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to list job descriptions")
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob handles GET /api/jobs/{id}
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "job description ID")
	if !ok {
		return
	}

	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, err, "Failed to get job description")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob handles PUT /api/jobs/{id}
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "job description ID")
	if !ok {
		return
	}
	req, ok := s.decodeJobRequest(w, r)
	if !ok {
		return
	}

	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, err, "Failed to get job description")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return
	}

	req.Apply(job)
	updated, err := s.store.UpdateJob(r.Context(), job)
	if err != nil {
		s.writeError(w, err, "Failed to update job description")
		return
	}
	if !updated {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob handles DELETE /api/jobs/{id}
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "job description ID")
	if !ok {
		return
	}

	deleted, err := s.store.DeleteJob(r.Context(), id)
	if err != nil {
		s.writeError(w, err, "Failed to delete job description")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Job description not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
