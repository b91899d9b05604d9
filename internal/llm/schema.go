package llm

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// FieldType is the JSON type of a response field.
type FieldType string

const (
	FieldString      FieldType = "string"
	FieldStringArray FieldType = "[]string"
)

// ResponseSchema describes the JSON object a structured call must return.
// It drives both the prompt text and the provider-side response schema.
type ResponseSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField defines a single field in the response object.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// BuildPrompt appends an output contract and the input text to instructions.
func (s *ResponseSchema) BuildPrompt(instructions, inputText string) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(instructions))
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range s.Fields {
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, field.typeOrDefault(), requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

func (f SchemaField) typeOrDefault() FieldType {
	if f.Type == "" {
		return FieldString
	}
	return f.Type
}

// toGenai converts the schema into Gemini's response schema.
func (s *ResponseSchema) toGenai() *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Fields)),
	}
	for _, field := range s.Fields {
		prop := &genai.Schema{Description: field.Description}
		switch field.typeOrDefault() {
		case FieldStringArray:
			prop.Type = genai.TypeArray
			prop.Items = &genai.Schema{Type: genai.TypeString}
		default:
			prop.Type = genai.TypeString
		}
		out.Properties[field.Name] = prop
		if field.Required {
			out.Required = append(out.Required, field.Name)
		}
	}
	return out
}

// SkillsSchema is the response shape for skill classification: {"skills": [string]}.
func SkillsSchema() *ResponseSchema {
	return &ResponseSchema{
		Name:        "Skills",
		Description: "Key technical and soft skills mentioned in the text",
		Fields: []SchemaField{
			{
				Name:        "skills",
				Type:        FieldStringArray,
				Description: "Each skill as a short noun phrase, e.g. \"java\", \"scrum\"",
				Required:    true,
			},
		},
	}
}
