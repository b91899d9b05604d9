// Package store defines the persistence contract shared by the in-memory
// and Postgres backends. Lookups return (nil, nil) when a record is absent;
// deletes and updates report whether a record was affected.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Analyses persists analysis results.
type Analyses interface {
	SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error)
	ListAnalyses(ctx context.Context) ([]types.AnalysisResult, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error)
}

// Jobs persists job descriptions.
type Jobs interface {
	CreateJob(ctx context.Context, job *types.JobDescription) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.JobDescription, error)
	ListJobs(ctx context.Context) ([]types.JobDescription, error)
	UpdateJob(ctx context.Context, job *types.JobDescription) (bool, error)
	DeleteJob(ctx context.Context, id uuid.UUID) (bool, error)
}

// Resumes persists uploaded resumes.
type Resumes interface {
	SaveResume(ctx context.Context, resume *types.Resume) error
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) (bool, error)
}

// Store is the full persistence surface.
type Store interface {
	Analyses
	Jobs
	Resumes
	Ping(ctx context.Context) error
	Close()
}
