package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// handleAnalyze handles POST /api/analysis
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	resp, err := s.analyzer.AnalyzeRequest(r.Context(), req)
	if err != nil {
		s.writeError(w, err, "Failed to analyze resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListAnalyses handles GET /api/analysis
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	results, err := s.store.ListAnalyses(r.Context())
	if err != nil {
		s.writeError(w, err, "Failed to list analyses")
		return
	}
	s.jsonResponse(w, http.StatusOK, results)
}

// handleGetAnalysis handles GET /api/analysis/{id}
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "analysis ID")
	if !ok {
		return
	}

	result, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, err, "Failed to get analysis")
		return
	}
	if result == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleDeleteAnalysis handles DELETE /api/analysis/{id}
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "analysis ID")
	if !ok {
		return
	}

	deleted, err := s.store.DeleteAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, err, "Failed to delete analysis")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path value, writing a 400 when it is malformed.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing "+what)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+what)
		return uuid.Nil, false
	}
	return id, true
}
