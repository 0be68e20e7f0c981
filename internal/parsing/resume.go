package parsing

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avery/staffdesk/internal/llm"
	"github.com/avery/staffdesk/internal/prompts"
	"github.com/avery/staffdesk/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_parse.schema.json
var resumeParseSchema string

// Extractor turns resume text into a structured parse result via the LLM.
type Extractor struct {
	client llm.Client
	schema *gojsonschema.Schema
}

// NewExtractor builds an Extractor around an extraction client.
func NewExtractor(client llm.Client) (*Extractor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeParseSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile resume parse schema: %w", err)
	}
	return &Extractor{client: client, schema: schema}, nil
}

// ParseFile extracts candidate data from an uploaded resume file: text
// extraction, model prompt, schema check, decode.
func (e *Extractor) ParseFile(ctx context.Context, filename string, data []byte) (*types.ResumeParseResult, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Message: "resume file contains no text"}
	}
	return e.Parse(ctx, text)
}

// Parse extracts candidate data from cleaned resume text.
func (e *Extractor) Parse(ctx context.Context, resumeText string) (*types.ResumeParseResult, error) {
	raw, err := e.client.GenerateJSON(ctx, buildResumePrompt(resumeText))
	if err != nil {
		return nil, &APICallError{Message: "resume extraction", Cause: err}
	}

	docLoader := gojsonschema.NewStringLoader(raw)
	validation, err := e.schema.Validate(docLoader)
	if err != nil {
		return nil, &ParseError{Message: "extraction output is not valid JSON", Cause: err}
	}
	if !validation.Valid() {
		violations := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			violations = append(violations, desc.String())
		}
		return nil, &SchemaError{Violations: violations}
	}

	var result types.ResumeParseResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &ParseError{Message: "failed to decode extraction output", Cause: err}
	}
	result.ResumeText = resumeText

	return &result, nil
}

func buildResumePrompt(resumeText string) string {
	template := prompts.MustGet("resume.json", "extract-candidate")
	return prompts.Format(template, map[string]string{"ResumeText": resumeText})
}
