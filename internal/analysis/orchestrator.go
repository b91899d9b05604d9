// Package analysis runs one resume-vs-job analysis end to end: resolve both
// texts, extract skills concurrently, score, compose feedback, and persist
// the result.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/feedback"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// CompleteMessage is the message on every successful response.
const CompleteMessage = "Analysis complete."

// Extractor turns text into skills. It must not fail.
type Extractor interface {
	Extract(ctx context.Context, text string) extraction.Outcome
}

// ResumeSource resolves a resume reference. A nil resume with a nil error
// means the reference is unknown.
type ResumeSource interface {
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
}

// JobSource resolves a job reference. A nil job with a nil error means the
// reference is unknown.
type JobSource interface {
	GetJob(ctx context.Context, id uuid.UUID) (*types.JobDescription, error)
}

// ResultSaver persists finished analyses.
type ResultSaver interface {
	SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error
}

// Store is everything the orchestrator needs from persistence.
type Store interface {
	ResumeSource
	JobSource
	ResultSaver
}

// Diagnostics reports how each side's skills were obtained.
type Diagnostics struct {
	Resume extraction.Diagnostic `json:"resume"`
	Job    extraction.Diagnostic `json:"job"`
}

// Response is returned to the caller of Analyze.
type Response struct {
	AnalysisID      uuid.UUID       `json:"analysis_id"`
	Score           float64         `json:"score"` // fraction in [0, 1]
	Message         string          `json:"message"`
	Strengths       string          `json:"strengths"`
	Weaknesses      string          `json:"weaknesses"`
	Recommendations string          `json:"recommendations"`
	ResumeSkills    skills.SkillSet `json:"resume_skills"`
	JobSkills       skills.SkillSet `json:"job_skills"`
	Extraction      *Diagnostics    `json:"extraction,omitempty"`
}

// Orchestrator sequences extraction, scoring, feedback, and persistence.
type Orchestrator struct {
	extractor Extractor
	store     Store
	composer  *feedback.Composer
	logger    *zap.Logger
	tracer    trace.Tracer
	now       func() time.Time
	newID     func() uuid.UUID
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithComposer sets the feedback composer.
func WithComposer(c *feedback.Composer) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.composer = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logging.OrNop(l)
	}
}

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithIDGenerator sets the analysis ID generator.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(o *Orchestrator) {
		o.newID = newID
	}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(extractor Extractor, store Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		extractor: extractor,
		store:     store,
		composer:  feedback.NewComposer(feedback.DefaultOptions()),
		logger:    zap.NewNop(),
		tracer:    otel.Tracer("github.com/jonathan/resume-analyzer/internal/analysis"),
		now:       time.Now,
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AnalyzeRequest validates req and runs Analyze. Malformed or missing IDs
// are reported as InvalidInputError.
func (o *Orchestrator) AnalyzeRequest(ctx context.Context, req types.AnalysisRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		metrics.Analyses.WithLabelValues("invalid_input").Inc()
		return nil, &InvalidInputError{Message: "resume_id and job_description_id must be valid IDs", Cause: err}
	}
	return o.Analyze(ctx, uuid.MustParse(req.ResumeID), uuid.MustParse(req.JobID))
}

// Analyze scores the resume against the job and saves the result exactly
// once. Extraction never fails the request.
func (o *Orchestrator) Analyze(ctx context.Context, resumeID, jobID uuid.UUID) (*Response, error) {
	ctx, span := o.tracer.Start(ctx, "analysis.Analyze", trace.WithAttributes(
		attribute.String("resume.id", resumeID.String()),
		attribute.String("job.id", jobID.String()),
	))
	defer span.End()

	resp, err := o.analyze(ctx, resumeID, jobID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.Analyses.WithLabelValues(resultLabel(err)).Inc()
		return nil, err
	}
	metrics.Analyses.WithLabelValues("ok").Inc()
	return resp, nil
}

func (o *Orchestrator) analyze(ctx context.Context, resumeID, jobID uuid.UUID) (*Response, error) {
	resume, err := o.store.GetResume(ctx, resumeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if resume == nil {
		return nil, &InvalidInputError{Field: "resume_id", Message: "resume not found"}
	}

	job, err := o.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job description: %w", err)
	}
	if job == nil {
		return nil, &InvalidInputError{Field: "job_description_id", Message: "job description not found"}
	}

	resumeOutcome, jobOutcome := o.extractBoth(ctx, resume.Content, job.Description)
	resumeSkills := resumeOutcome.Skills()
	jobSkills := jobOutcome.Skills()

	breakdown := scoring.Calculate(resumeSkills, jobSkills)
	fb := o.composer.Compose(resumeSkills, jobSkills, breakdown)
	metrics.MatchPercentage.Observe(breakdown.Percentage)

	result := &types.AnalysisResult{
		ID:              o.newID(),
		ResumeID:        resume.ID,
		JobID:           job.ID,
		JobTitle:        job.Title,
		Company:         types.DefaultCompany,
		Score:           breakdown.Fraction(),
		Strengths:       fb.Strengths,
		Weaknesses:      fb.Weaknesses,
		Recommendations: fb.Recommendations,
		CreatedAt:       o.now().UTC(),
	}
	if err := o.store.SaveAnalysis(ctx, result); err != nil {
		return nil, &PersistenceError{Message: "failed to save analysis", Cause: err}
	}

	o.logger.Info("analysis complete",
		zap.String("analysis_id", result.ID.String()),
		zap.Int("matched", breakdown.Matched),
		zap.Int("total", breakdown.Total),
		zap.Float64("percentage", breakdown.Percentage),
	)

	return &Response{
		AnalysisID:      result.ID,
		Score:           result.Score,
		Message:         CompleteMessage,
		Strengths:       fb.Strengths,
		Weaknesses:      fb.Weaknesses,
		Recommendations: fb.Recommendations,
		ResumeSkills:    resumeSkills,
		JobSkills:       jobSkills,
		Extraction: &Diagnostics{
			Resume: extraction.Describe(resumeOutcome),
			Job:    extraction.Describe(jobOutcome),
		},
	}, nil
}

// extractBoth runs both extractions concurrently and waits for both.
func (o *Orchestrator) extractBoth(ctx context.Context, resumeText, jobText string) (extraction.Outcome, extraction.Outcome) {
	var resumeOutcome, jobOutcome extraction.Outcome

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resumeOutcome = o.extractor.Extract(gctx, resumeText)
		return nil
	})
	g.Go(func() error {
		jobOutcome = o.extractor.Extract(gctx, jobText)
		return nil
	})
	_ = g.Wait() // extraction never fails

	return resumeOutcome, jobOutcome
}

func resultLabel(err error) string {
	switch err.(type) {
	case *InvalidInputError:
		return "invalid_input"
	case *PersistenceError:
		return "persistence_error"
	default:
		return "error"
	}
}
