package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/schemas"
)

// skillsResponse is the JSON shape the classifier must return.
type skillsResponse struct {
	Skills []string `json:"skills"`
}

// LLMClassifier asks an LLM for skills using a structured response schema.
type LLMClassifier struct {
	client       llm.Client
	tier         llm.ModelTier
	schema       *llm.ResponseSchema
	instructions string
	logger       *zap.Logger
}

// NewLLMClassifier creates a classifier over client. The prompt is rendered
// once; kind names the documents it will see, e.g. "resume or job description".
func NewLLMClassifier(client llm.Client, tier llm.ModelTier, kind string, logger *zap.Logger) (*LLMClassifier, error) {
	instructions, err := prompts.Render(
		prompts.MustGet("extraction.json", "extract-skills"),
		map[string]string{"Kind": kind},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build skill prompt: %w", err)
	}

	return &LLMClassifier{
		client:       client,
		tier:         tier,
		schema:       llm.SkillsSchema(),
		instructions: instructions,
		logger:       logging.OrNop(logger),
	}, nil
}

// Classify sends text to the model and returns the raw skill list.
// Shape problems are returned as *ParseError.
func (c *LLMClassifier) Classify(ctx context.Context, text string) ([]string, error) {
	prompt := c.schema.BuildPrompt(c.instructions, text)

	c.logger.Debug("sending skill classification request",
		zap.String("model", c.client.GetModel(c.tier)),
		zap.Int("text_length", len(text)),
	)

	raw, err := c.client.GenerateJSON(ctx, prompt, c.tier, c.schema)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.SkillsResponse, []byte(raw)); err != nil {
		c.logger.Debug("classifier response rejected",
			zap.String("response", logging.TruncateForLog(raw, 200)),
			zap.Error(err),
		)
		return nil, &ParseError{Message: "response does not match skills schema", Cause: err}
	}

	var resp skillsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, &ParseError{Message: "failed to decode skills response", Cause: err}
	}
	return resp.Skills, nil
}
