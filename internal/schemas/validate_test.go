package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SkillsResponse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"valid", `{"skills": ["java", "sql"]}`, false},
		{"empty list is schema-valid", `{"skills": []}`, false},
		{"extra keys allowed", `{"skills": ["go"], "note": "x"}`, false},
		{"missing skills", `{"items": ["go"]}`, true},
		{"skills not array", `{"skills": "go"}`, true},
		{"non-string item", `{"skills": ["go", 3]}`, true},
		{"array root", `["go"]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(SkillsResponse, []byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(SkillsResponse, []byte(`{"skills": [`))

	var docErr *DocumentError
	assert.ErrorAs(t, err, &docErr)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "missing.schema.json")
}
