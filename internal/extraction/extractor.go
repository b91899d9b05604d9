package extraction

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/skills"
)

// DefaultTimeout bounds a single classifier call.
const DefaultTimeout = 10 * time.Second

// Classifier proposes skills for a text. Implementations talk to a remote
// model; errors are typed so the extractor can name the failure.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]string, error)
}

// Extractor runs the classifier under a timeout and falls back to the
// vocabulary on any failure. Extract never returns an error.
type Extractor struct {
	classifier Classifier
	vocabulary skills.Vocabulary
	timeout    time.Duration
	logger     *zap.Logger
	tracer     trace.Tracer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout sets the classifier timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithVocabulary replaces the default fallback vocabulary.
func WithVocabulary(v skills.Vocabulary) Option {
	return func(e *Extractor) {
		e.vocabulary = v
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		e.logger = logging.OrNop(l)
	}
}

// NewExtractor creates an Extractor. A nil classifier makes every
// non-blank extraction fall back.
func NewExtractor(classifier Classifier, opts ...Option) *Extractor {
	e := &Extractor{
		classifier: classifier,
		vocabulary: skills.DefaultVocabulary(),
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
		tracer:     otel.Tracer("github.com/jonathan/resume-analyzer/internal/extraction"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type classifyResult struct {
	skills []string
	err    error
}

// Extract returns the skills in text.
func (e *Extractor) Extract(ctx context.Context, text string) Outcome {
	ctx, span := e.tracer.Start(ctx, "extraction.Extract",
		trace.WithAttributes(attribute.Int("text.length", len(text))))
	defer span.End()

	outcome := e.extract(ctx, text)

	d := Describe(outcome)
	span.SetAttributes(
		attribute.String("extraction.source", d.Source),
		attribute.String("extraction.reason", string(d.Reason)),
		attribute.Int("extraction.skills", outcome.Skills().Len()),
	)
	metrics.ExtractionOutcomes.WithLabelValues(d.Source, string(d.Reason)).Inc()
	return outcome
}

func (e *Extractor) extract(ctx context.Context, text string) Outcome {
	if strings.TrimSpace(text) == "" {
		e.logger.Debug("blank input, skipping classifier")
		return Fallback{Reason: ReasonEmptyInput}
	}
	if e.classifier == nil {
		return e.fallback(text, ReasonTransportError, ErrNoClassifier)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	results := make(chan classifyResult, 1)
	go func() {
		found, err := e.classifier.Classify(callCtx, text)
		results <- classifyResult{skills: found, err: err}
	}()

	var res classifyResult
	select {
	case res = <-results:
	case <-callCtx.Done():
		// The call is abandoned; its goroutine drains into the buffered channel.
		metrics.ClassifierDuration.WithLabelValues("abandoned").Observe(time.Since(start).Seconds())
		if errors.Is(ctx.Err(), context.Canceled) {
			return e.fallback(text, ReasonTransportError, ctx.Err())
		}
		return e.fallback(text, ReasonTimeout, callCtx.Err())
	}

	if res.err != nil {
		metrics.ClassifierDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		reason := reasonFor(res.err)
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		return e.fallback(text, reason, res.err)
	}
	metrics.ClassifierDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	found := skills.NewSkillSet(res.skills...).Folded()
	if found.IsEmpty() {
		return e.fallback(text, ReasonEmptyResult, nil)
	}

	e.logger.Debug("classifier extracted skills",
		zap.Int("count", found.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return Classified{Found: found}
}

func (e *Extractor) fallback(text string, reason Reason, cause error) Outcome {
	found := e.vocabulary.Match(text)
	e.logger.Warn("skill classifier unusable, using vocabulary fallback",
		zap.String("reason", string(reason)),
		zap.Error(cause),
		zap.Int("fallback_skills", found.Len()),
	)
	return Fallback{Found: found, Reason: reason, Cause: cause}
}
