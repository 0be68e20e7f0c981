package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleRows(t *testing.T) {
	rows := Parse("a,b,c\nd,e,f")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"d", "e", "f"}, rows[1])
}

func TestParse_QuotedFieldWithComma(t *testing.T) {
	rows := Parse("a,b\nc,\"d,e\"")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d,e"}, rows[1])
}

func TestParse_EscapedQuotes(t *testing.T) {
	rows := Parse(`"say ""hi""",x`)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{`say "hi"`, "x"}, rows[0])
}

func TestParse_EmbeddedNewline(t *testing.T) {
	rows := Parse("\"line1\nline2\",b")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"line1\nline2", "b"}, rows[0])
}

func TestParse_CRLFLineEndings(t *testing.T) {
	rows := Parse("a,b\r\nc,d\r\n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestParse_TrailingNewlineNoSpuriousRow(t *testing.T) {
	rows := Parse("a,b\n")
	require.Len(t, rows, 1)
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestParse_TrimsWhitespace(t *testing.T) {
	rows := Parse("  a  , b \n")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

// quoting every field and doubling internal quotes must round-trip exactly
func TestParse_RoundTrip(t *testing.T) {
	original := []string{`plain`, `has,comma`, `has "quotes"`, "multi\nline"}

	quoted := make([]string, len(original))
	for i, f := range original {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}

	rows := Parse(strings.Join(quoted, ","))
	require.Len(t, rows, 1)
	assert.Equal(t, original, rows[0])
}

func TestNewDocument_EmptyRowsRejected(t *testing.T) {
	_, err := NewDocument(nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestNewDocument_SplitsHeaderAndData(t *testing.T) {
	doc, err := NewDocument([][]string{{"h1", "h2"}, {"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, doc.Headers())
	require.Len(t, doc.Rows(), 1)
}

func TestParseUpload_RejectsUnknownExtension(t *testing.T) {
	_, err := ParseUpload("resume.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestParseUpload_ExtensionCaseInsensitive(t *testing.T) {
	doc, err := ParseUpload("People.CSV", strings.NewReader("Name\nAda"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, doc.Headers())
}

func TestEncode_QuotesAndRoundTrips(t *testing.T) {
	rows := [][]string{
		{"Name", "Notes"},
		{"Ada, Countess", `said "hi"` + "\nthen left"},
	}

	encoded := Encode(rows)
	assert.Contains(t, encoded, `"Ada, Countess"`)
	assert.Contains(t, encoded, `""hi""`)

	parsed := Parse(encoded)
	require.Len(t, parsed, 2)
	assert.Equal(t, rows[0], parsed[0])
	assert.Equal(t, "Ada, Countess", parsed[1][0])
}
