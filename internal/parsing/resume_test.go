package parsing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned extraction payload.
type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

const sampleExtraction = `{
	"candidate_name": "Ada Lovelace",
	"candidate_email": "ada@example.com",
	"candidate_phone": "555-0100",
	"candidate_address": "",
	"positions": [
		{"position_name": "Analyst", "company_name": "Babbage & Co", "job_details": "", "skills": "analysis"}
	],
	"education_qualifications": []
}`

func TestExtractor_Parse(t *testing.T) {
	fake := &fakeLLM{response: sampleExtraction}
	extractor, err := NewExtractor(fake)
	require.NoError(t, err)

	result, err := extractor.Parse(context.Background(), "Ada Lovelace\nAnalyst at Babbage & Co")
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", result.CandidateName)
	assert.Equal(t, "ada@example.com", result.CandidateEmail)
	require.Len(t, result.Positions, 1)
	assert.Equal(t, "Analyst", result.Positions[0].PositionName)
	assert.Equal(t, "Ada Lovelace\nAnalyst at Babbage & Co", result.ResumeText)
	assert.Contains(t, fake.prompt, "Ada Lovelace", "resume text reaches the prompt")
}

func TestExtractor_RejectsSchemaViolation(t *testing.T) {
	fake := &fakeLLM{response: `{"candidate_email": "ada@example.com"}`}
	extractor, err := NewExtractor(fake)
	require.NoError(t, err)

	_, err = extractor.Parse(context.Background(), "some resume")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestExtractor_RejectsNonJSON(t *testing.T) {
	fake := &fakeLLM{response: "I could not parse this resume."}
	extractor, err := NewExtractor(fake)
	require.NoError(t, err)

	_, err = extractor.Parse(context.Background(), "some resume")
	require.Error(t, err)
}

func TestExtractor_ParseFile_EmptyText(t *testing.T) {
	extractor, err := NewExtractor(&fakeLLM{response: sampleExtraction})
	require.NoError(t, err)

	_, err = extractor.ParseFile(context.Background(), "resume.txt", []byte("   \n  "))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestExtractText_HTMLStripped(t *testing.T) {
	html := `<html><head><style>p{color:red}</style></head>
	<body><h1>Ada Lovelace</h1><p>Analyst   at Babbage</p><script>alert(1)</script></body></html>`

	text, err := ExtractText("resume.html", []byte(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "Analyst at Babbage")
	assert.NotContains(t, text, "alert(1)")
	assert.NotContains(t, text, "color:red")
}

func TestExtractText_RejectsUnknownFormat(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("binary"))
	require.Error(t, err)
}

func TestCleanText(t *testing.T) {
	in := "Line one   with   spaces\r\n\r\n\r\n\r\nLine two\t tabbed"
	out := CleanText(in)
	assert.Equal(t, "Line one with spaces\n\nLine two tabbed", out)
}
