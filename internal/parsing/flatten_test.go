package parsing

import (
	"testing"

	"github.com/avery/staffdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	result := &types.ResumeParseResult{
		CandidateName:    "Ada King Lovelace",
		CandidateEmail:   "ada@example.com",
		CandidatePhone:   "555-0100",
		CandidateAddress: "12 Analytical Row",
		Positions: []types.ResumePosition{
			{PositionName: "Chief Analyst", CompanyName: "Babbage & Co", Skills: "analysis, mathematics"},
			{PositionName: "Analyst", CompanyName: "Royal Society", Skills: "Mathematics, writing"},
		},
		ResumeText: "full text",
	}

	doc := Flatten(result)
	require.Equal(t, FlattenHeaders, doc.Headers())
	require.Len(t, doc.Rows(), 1)

	row := doc.Rows()[0]
	byHeader := make(map[string]string, len(row))
	for i, h := range doc.Headers() {
		byHeader[h] = row[i]
	}

	assert.Equal(t, "Ada King", byHeader["First Name"])
	assert.Equal(t, "Lovelace", byHeader["Last Name"])
	assert.Equal(t, "ada@example.com", byHeader["Email"])
	assert.Equal(t, "Chief Analyst", byHeader["Title"])
	assert.Equal(t, "Babbage & Co", byHeader["Current Organization"])
	assert.Equal(t, "analysis, mathematics, writing", byHeader["Skills"])
	assert.Equal(t, "full text", byHeader["Resume Text"])
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Ada", "Ada", ""},
		{"Ada King Lovelace", "Ada King", "Lovelace"},
		{"  ", "", ""},
	}
	for _, tt := range tests {
		first, last := splitName(tt.full)
		assert.Equal(t, tt.first, first, "first of %q", tt.full)
		assert.Equal(t, tt.last, last, "last of %q", tt.full)
	}
}

func TestFlatten_NoPositions(t *testing.T) {
	doc := Flatten(&types.ResumeParseResult{CandidateName: "Grace Hopper"})
	row := doc.Rows()[0]
	byHeader := make(map[string]string, len(row))
	for i, h := range doc.Headers() {
		byHeader[h] = row[i]
	}
	assert.Empty(t, byHeader["Title"])
	assert.Empty(t, byHeader["Current Organization"])
}
