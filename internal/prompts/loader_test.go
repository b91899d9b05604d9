package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("extraction.json", "extract-skills")
	require.NoError(t, err)
	assert.Contains(t, prompt, `under the key "skills"`)
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.ErrorContains(t, err, "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("extraction.json", "nonexistent-key")
	assert.ErrorContains(t, err, "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { MustGet("extraction.json", "extract-skills") })
}

func TestRender(t *testing.T) {
	out, err := Render("Skills in a {{.Kind}}.", map[string]string{"Kind": "resume"})
	require.NoError(t, err)
	assert.Equal(t, "Skills in a resume.", out)
}

func TestRender_MissingKey(t *testing.T) {
	_, err := Render("Skills in a {{.Kind}}.", map[string]string{})
	assert.ErrorContains(t, err, "failed to render")
}

func TestRender_ExtractSkillsPrompt(t *testing.T) {
	out, err := Render(MustGet("extraction.json", "extract-skills"), map[string]string{"Kind": "job description"})
	require.NoError(t, err)
	assert.Contains(t, out, "mentioned in a job description.")
	assert.NotContains(t, out, "{{")
}
