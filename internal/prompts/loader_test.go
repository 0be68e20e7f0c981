package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("resume.json", "extract-candidate")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "structured candidate data")
	assert.Contains(t, prompt, "{{.ResumeText}}")
}

func TestGet_UnknownKey(t *testing.T) {
	ClearCache()

	_, err := Get("resume.json", "no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_UnknownFile(t *testing.T) {
	ClearCache()

	_, err := Get("missing.json", "extract-candidate")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Resume:\n{{.ResumeText}}", map[string]string{"ResumeText": "Ada Lovelace"})
	assert.Equal(t, "Resume:\nAda Lovelace", out)
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("resume.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "extract-candidate")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("resume.json", "no-such-key")
	})
}
