// Package schemas validates JSON documents against the JSON Schemas embedded
// in the binary.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// SkillsResponse is the schema for classifier answers: {"skills": [string]}.
const SkillsResponse = "skills_response.schema.json"

//go:embed *.schema.json
var schemaFiles embed.FS

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError means the document is not parseable JSON.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document is not valid JSON: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Validate checks doc against the embedded schema called name.
// It returns *ValidationError, *DocumentError or *SchemaLoadError.
func Validate(name string, doc []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	return toValidationError(result)
}

func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema not embedded", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "invalid schema", Cause: err}
	}

	compiled[name] = schema
	return schema, nil
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
