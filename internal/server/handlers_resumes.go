package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// UploadMessage is the message returned after a successful upload.
const UploadMessage = "Resume uploaded successfully"

// multipart framing allowance on top of the file size cap
const multipartOverhead = 64 << 10

// handleUploadResume handles POST /api/resumes/upload
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.decoder.MaxSize()+multipartOverhead)
	if err := r.ParseMultipartForm(s.decoder.MaxSize()); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, s.decoder.MaxSize()+1))
	if err != nil {
		s.writeError(w, err, "Failed to read uploaded file")
		return
	}

	doc, err := s.decoder.Decode(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.writeError(w, err, "Failed to decode uploaded file")
		return
	}

	resume := &types.Resume{
		ID:          uuid.New(),
		Content:     doc.Text,
		FileName:    header.Filename,
		ContentType: doc.ContentType,
		FileSize:    doc.Size,
		UploadDate:  time.Now().UTC(),
	}
	if err := s.store.SaveResume(r.Context(), resume); err != nil {
		s.writeError(w, err, "Failed to save resume")
		return
	}

	s.logger.Info("resume uploaded",
		zap.String("resume_id", resume.ID.String()),
		zap.String("content_type", resume.ContentType),
		zap.Int64("size", resume.FileSize),
		zap.String("hash", doc.Hash),
	)

	s.jsonResponse(w, http.StatusOK, types.ResumeUploadResponse{
		ID:         resume.ID,
		Message:    UploadMessage,
		UploadDate: resume.UploadDate,
	})
}

// handleGetResume handles GET /api/resumes/{id}
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume ID")
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, err, "Failed to get resume")
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume handles DELETE /api/resumes/{id}
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "resume ID")
	if !ok {
		return
	}

	deleted, err := s.store.DeleteResume(r.Context(), id)
	if err != nil {
		s.writeError(w, err, "Failed to delete resume")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
