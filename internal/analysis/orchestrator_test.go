package analysis

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/feedback"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// fakeStore is an in-memory Store that records saves.
type fakeStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*types.Resume
	jobs    map[uuid.UUID]*types.JobDescription
	saved   []*types.AnalysisResult
	saveErr error
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resumes: make(map[uuid.UUID]*types.Resume),
		jobs:    make(map[uuid.UUID]*types.JobDescription),
	}
}

func (s *fakeStore) addResume(content string) uuid.UUID {
	id := uuid.New()
	s.resumes[id] = &types.Resume{ID: id, Content: content}
	return id
}

func (s *fakeStore) addJob(title, description string) uuid.UUID {
	id := uuid.New()
	s.jobs[id] = &types.JobDescription{ID: id, Title: title, Description: description}
	return id
}

func (s *fakeStore) GetResume(_ context.Context, id uuid.UUID) (*types.Resume, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.resumes[id], nil
}

func (s *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*types.JobDescription, error) {
	return s.jobs[id], nil
}

func (s *fakeStore) SaveAnalysis(_ context.Context, result *types.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, result)
	return nil
}

// mapExtractor answers with fixed outcomes keyed by text.
type mapExtractor struct {
	calls    atomic.Int32
	outcomes map[string]extraction.Outcome
}

func (m *mapExtractor) Extract(_ context.Context, text string) extraction.Outcome {
	m.calls.Add(1)
	if out, ok := m.outcomes[text]; ok {
		return out
	}
	return extraction.Fallback{Reason: extraction.ReasonEmptyInput}
}

// countingClassifier counts calls and returns a fixed answer.
type countingClassifier struct {
	calls atomic.Int32
	found []string
	err   error
}

func (c *countingClassifier) Classify(context.Context, string) ([]string, error) {
	c.calls.Add(1)
	return c.found, c.err
}

// rendezvousClassifier answers only after every expected caller has arrived.
type rendezvousClassifier struct {
	arrived sync.WaitGroup
}

func newRendezvousClassifier(callers int) *rendezvousClassifier {
	c := &rendezvousClassifier{}
	c.arrived.Add(callers)
	return c
}

func (c *rendezvousClassifier) Classify(_ context.Context, text string) ([]string, error) {
	c.arrived.Done()
	c.arrived.Wait()
	return []string{text}, nil
}

func classified(values ...string) extraction.Outcome {
	return extraction.Classified{Found: skills.NewSkillSet(values...)}
}

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestOrchestrator(ex Extractor, store Store, opts ...Option) *Orchestrator {
	opts = append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)
	return NewOrchestrator(ex, store, opts...)
}

// Scenario: resume [Java, Spring, SQL] vs job [Java, SQL, Docker].
func TestAnalyze_PartialMatch(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("resume text")
	jobID := store.addJob("Backend Engineer", "job text")
	ex := &mapExtractor{outcomes: map[string]extraction.Outcome{
		"resume text": classified("java", "spring", "sql"),
		"job text":    classified("java", "sql", "docker"),
	}}

	resp, err := newTestOrchestrator(ex, store).Analyze(context.Background(), resumeID, jobID)

	require.NoError(t, err)
	assert.InDelta(t, 0.6667, resp.Score, 0.0001)
	assert.Equal(t, CompleteMessage, resp.Message)
	assert.Contains(t, resp.Weaknesses, "docker")
	assert.Contains(t, resp.Strengths, "java, sql")
	assert.Equal(t, []string{"java", "spring", "sql"}, resp.ResumeSkills.Items())
	assert.Equal(t, []string{"java", "sql", "docker"}, resp.JobSkills.Items())
	assert.Equal(t, int32(2), ex.calls.Load())

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, resp.AnalysisID, saved.ID)
	assert.Equal(t, resumeID, saved.ResumeID)
	assert.Equal(t, jobID, saved.JobID)
	assert.Equal(t, "Backend Engineer", saved.JobTitle)
	assert.Equal(t, types.DefaultCompany, saved.Company)
	assert.Equal(t, resp.Score, saved.Score)
	assert.Equal(t, resp.Strengths, saved.Strengths)
	assert.Equal(t, resp.Weaknesses, saved.Weaknesses)
	assert.Equal(t, resp.Recommendations, saved.Recommendations)
	assert.Equal(t, fixedTime, saved.CreatedAt)
}

// Scenario: job with no skills scores 1.0 regardless of resume.
func TestAnalyze_EmptyJobSkills(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("resume text")
	jobID := store.addJob("Generalist", "job text")
	ex := &mapExtractor{outcomes: map[string]extraction.Outcome{
		"resume text": classified("go", "rust"),
		"job text":    extraction.Fallback{Reason: extraction.ReasonEmptyResult},
	}}

	resp, err := newTestOrchestrator(ex, store).Analyze(context.Background(), resumeID, jobID)

	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.Score)
	assert.Contains(t, resp.Recommendations, "relevant technologies")
}

// Scenario: blank resume never reaches the classifier and scores 0.
func TestAnalyze_BlankResume(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("")
	jobID := store.addJob("Java Developer", "Java and Spring Boot")
	classifier := &countingClassifier{found: []string{"java", "spring boot"}}

	resp, err := newTestOrchestrator(extraction.NewExtractor(classifier), store).
		Analyze(context.Background(), resumeID, jobID)

	require.NoError(t, err)
	assert.Equal(t, int32(1), classifier.calls.Load(), "only the job text should be classified")
	assert.Equal(t, 0.0, resp.Score)
	assert.True(t, resp.ResumeSkills.IsEmpty())
	require.NotNil(t, resp.Extraction)
	assert.Equal(t, extraction.Diagnostic{Source: extraction.SourceFallback, Reason: extraction.ReasonEmptyInput}, resp.Extraction.Resume)
	assert.Equal(t, extraction.Diagnostic{Source: extraction.SourceClassified}, resp.Extraction.Job)
}

// Scenario: classifier answers HTTP 500; the response is still complete.
func TestAnalyze_ClassifierServerError(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("Java developer, Scrum Master, tutoring")
	jobID := store.addJob("Java Developer", "Java, Spring, Scrum")
	classifier := &countingClassifier{err: &llm.StatusError{Code: http.StatusInternalServerError}}

	resp, err := newTestOrchestrator(extraction.NewExtractor(classifier), store).
		Analyze(context.Background(), resumeID, jobID)

	require.NoError(t, err)
	assert.Equal(t, []string{"java", "scrum", "scrum master", "tutoring"}, resp.ResumeSkills.Items())
	assert.Equal(t, []string{"java", "spring", "scrum"}, resp.JobSkills.Items())
	assert.InDelta(t, 2.0/3.0, resp.Score, 0.0001)
	assert.Equal(t, extraction.ReasonBadStatus, resp.Extraction.Resume.Reason)
	assert.Equal(t, extraction.ReasonBadStatus, resp.Extraction.Job.Reason)
	assert.Len(t, store.saved, 1)
}

// Both extractions must be in flight together. Run one after the other, the
// first would time out waiting for the second and fall back.
func TestAnalyze_ExtractsResumeAndJobConcurrently(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("golang")
	jobID := store.addJob("Platform Engineer", "kubernetes")
	ex := extraction.NewExtractor(newRendezvousClassifier(2), extraction.WithTimeout(2*time.Second))

	resp, err := newTestOrchestrator(ex, store).Analyze(context.Background(), resumeID, jobID)

	require.NoError(t, err)
	require.NotNil(t, resp.Extraction)
	assert.Equal(t, extraction.SourceClassified, resp.Extraction.Resume.Source)
	assert.Equal(t, extraction.SourceClassified, resp.Extraction.Job.Source)
	assert.Equal(t, []string{"golang"}, resp.ResumeSkills.Items())
	assert.Equal(t, []string{"kubernetes"}, resp.JobSkills.Items())
	assert.Zero(t, resp.Score)
}

func TestAnalyze_UnknownReferences(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("text")
	jobID := store.addJob("Job", "text")
	ex := &mapExtractor{}
	o := newTestOrchestrator(ex, store)

	tests := []struct {
		name     string
		resumeID uuid.UUID
		jobID    uuid.UUID
		field    string
	}{
		{"unknown resume", uuid.New(), jobID, "resume_id"},
		{"unknown job", resumeID, uuid.New(), "job_description_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := o.Analyze(context.Background(), tt.resumeID, tt.jobID)

			assert.Nil(t, resp)
			var inputErr *InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}

	assert.Empty(t, store.saved, "no write on invalid input")
	assert.Zero(t, ex.calls.Load(), "no extraction on invalid input")
}

func TestAnalyze_LoadFailureIsNotInvalidInput(t *testing.T) {
	store := newFakeStore()
	store.loadErr = errors.New("connection reset")

	_, err := newTestOrchestrator(&mapExtractor{}, store).Analyze(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	var inputErr *InvalidInputError
	assert.False(t, errors.As(err, &inputErr))
	assert.Empty(t, store.saved)
}

func TestAnalyze_SaveFailureDiscardsResponse(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	resumeID := store.addResume("a")
	jobID := store.addJob("Job", "b")

	resp, err := newTestOrchestrator(&mapExtractor{}, store).Analyze(context.Background(), resumeID, jobID)

	assert.Nil(t, resp)
	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.ErrorIs(t, err, store.saveErr)
}

func TestAnalyze_IDsAreGeneratedPerRun(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("a")
	jobID := store.addJob("Job", "b")
	fixedID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	o := newTestOrchestrator(&mapExtractor{}, store, WithIDGenerator(func() uuid.UUID { return fixedID }))

	resp, err := o.Analyze(context.Background(), resumeID, jobID)
	require.NoError(t, err)
	assert.Equal(t, fixedID, resp.AnalysisID)

	first, err := newTestOrchestrator(&mapExtractor{}, store).Analyze(context.Background(), resumeID, jobID)
	require.NoError(t, err)
	second, err := newTestOrchestrator(&mapExtractor{}, store).Analyze(context.Background(), resumeID, jobID)
	require.NoError(t, err)
	assert.NotEqual(t, first.AnalysisID, second.AnalysisID)
	assert.Len(t, store.saved, 3)
}

func TestAnalyze_CustomComposer(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("resume text")
	jobID := store.addJob("Job", "job text")
	ex := &mapExtractor{outcomes: map[string]extraction.Outcome{
		"resume text": classified("a"),
		"job text":    classified("x", "y", "z"),
	}}
	composer := feedback.NewComposer(feedback.Options{Weaknesses: 3})

	resp, err := newTestOrchestrator(ex, store, WithComposer(composer)).Analyze(context.Background(), resumeID, jobID)

	require.NoError(t, err)
	assert.Contains(t, resp.Weaknesses, "x, y, z")
}

func TestAnalyzeRequest_Validation(t *testing.T) {
	store := newFakeStore()
	resumeID := store.addResume("a")
	jobID := store.addJob("Job", "b")
	o := newTestOrchestrator(&mapExtractor{}, store)

	_, err := o.AnalyzeRequest(context.Background(), types.AnalysisRequest{ResumeID: "nope", JobID: jobID.String()})
	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)

	resp, err := o.AnalyzeRequest(context.Background(), types.AnalysisRequest{
		ResumeID: resumeID.String(),
		JobID:    jobID.String(),
	})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestErrors_Messages(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "invalid input: resume_id: resume not found",
		(&InvalidInputError{Field: "resume_id", Message: "resume not found"}).Error())
	assert.Equal(t, "persistence error: failed to save analysis: boom",
		(&PersistenceError{Message: "failed to save analysis", Cause: cause}).Error())
	assert.ErrorIs(t, &PersistenceError{Cause: cause}, cause)
}
