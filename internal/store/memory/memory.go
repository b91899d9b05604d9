// Package memory is a map-backed store used by tests, the CLI, and the
// server when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/store"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var _ store.Store = (*Store)(nil)

// Store keeps every record in memory. Records are copied on the way in and
// out, so callers never share state with the store.
type Store struct {
	mu       sync.RWMutex
	seq      int64
	analyses map[uuid.UUID]entry[types.AnalysisResult]
	jobs     map[uuid.UUID]entry[types.JobDescription]
	resumes  map[uuid.UUID]types.Resume
}

// entry remembers insertion order so lists are stable when timestamps tie.
type entry[T any] struct {
	seq   int64
	value T
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		analyses: make(map[uuid.UUID]entry[types.AnalysisResult]),
		jobs:     make(map[uuid.UUID]entry[types.JobDescription]),
		resumes:  make(map[uuid.UUID]types.Resume),
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// SaveAnalysis stores a result under its ID.
func (s *Store) SaveAnalysis(_ context.Context, result *types.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[result.ID] = entry[types.AnalysisResult]{seq: s.next(), value: *result}
	return nil
}

// GetAnalysis returns the result with id, or nil.
func (s *Store) GetAnalysis(_ context.Context, id uuid.UUID) (*types.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.analyses[id]
	if !ok {
		return nil, nil
	}
	out := e.value
	return &out, nil
}

// ListAnalyses returns every result, newest first.
func (s *Store) ListAnalyses(_ context.Context) ([]types.AnalysisResult, error) {
	s.mu.RLock()
	entries := make([]entry[types.AnalysisResult], 0, len(s.analyses))
	for _, e := range s.analyses {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.value.CreatedAt.Equal(b.value.CreatedAt) {
			return a.value.CreatedAt.After(b.value.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]types.AnalysisResult, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out, nil
}

// DeleteAnalysis removes the result with id and reports whether it existed.
func (s *Store) DeleteAnalysis(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analyses[id]; !ok {
		return false, nil
	}
	delete(s.analyses, id)
	return true, nil
}

// CreateJob stores a job description under its ID.
func (s *Store) CreateJob(_ context.Context, job *types.JobDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = entry[types.JobDescription]{seq: s.next(), value: *job}
	return nil
}

// GetJob returns the job with id, or nil.
func (s *Store) GetJob(_ context.Context, id uuid.UUID) (*types.JobDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	out := e.value
	return &out, nil
}

// ListJobs returns every job description, newest first.
func (s *Store) ListJobs(_ context.Context) ([]types.JobDescription, error) {
	s.mu.RLock()
	entries := make([]entry[types.JobDescription], 0, len(s.jobs))
	for _, e := range s.jobs {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.value.CreatedAt.Equal(b.value.CreatedAt) {
			return a.value.CreatedAt.After(b.value.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]types.JobDescription, len(entries))
	for i, e := range entries {
		out[i] = e.value
	}
	return out, nil
}

// UpdateJob replaces an existing job, keeping its creation order.
func (s *Store) UpdateJob(_ context.Context, job *types.JobDescription) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.jobs[job.ID]
	if !ok {
		return false, nil
	}
	e.value = *job
	s.jobs[job.ID] = e
	return true, nil
}

// DeleteJob removes the job with id and reports whether it existed.
func (s *Store) DeleteJob(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return false, nil
	}
	delete(s.jobs, id)
	return true, nil
}

// SaveResume stores a resume under its ID.
func (s *Store) SaveResume(_ context.Context, resume *types.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[resume.ID] = *resume
	return nil
}

// GetResume returns the resume with id, or nil.
func (s *Store) GetResume(_ context.Context, id uuid.UUID) (*types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// DeleteResume removes the resume with id and reports whether it existed.
func (s *Store) DeleteResume(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resumes[id]; !ok {
		return false, nil
	}
	delete(s.resumes, id)
	return true, nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}
