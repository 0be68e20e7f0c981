package parsing

import (
	"strings"

	"github.com/avery/staffdesk/internal/csvio"
	"github.com/avery/staffdesk/internal/types"
)

// FlattenHeaders is the fixed header row a parsed resume is flattened under,
// chosen so the auto-mapper matches them against the job-seekers module.
var FlattenHeaders = []string{
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Address",
	"Title",
	"Current Organization",
	"Skills",
	"Resume Text",
}

// Flatten converts a parse result into a single synthetic CSV-like row so a
// resume upload feeds the same pipeline as a spreadsheet. The candidate name
// splits on the last space; the first (most recent) position supplies title
// and organization; skills are joined across all positions.
func Flatten(result *types.ResumeParseResult) *csvio.Document {
	first, last := splitName(result.CandidateName)

	title, organization := "", ""
	if len(result.Positions) > 0 {
		title = result.Positions[0].PositionName
		organization = result.Positions[0].CompanyName
	}

	row := []string{
		first,
		last,
		result.CandidateEmail,
		result.CandidatePhone,
		result.CandidateAddress,
		title,
		organization,
		joinSkills(result.Positions),
		result.ResumeText,
	}

	doc, _ := csvio.NewDocument([][]string{FlattenHeaders, row})
	return doc
}

func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	idx := strings.LastIndex(full, " ")
	if idx < 0 {
		return full, ""
	}
	return strings.TrimSpace(full[:idx]), strings.TrimSpace(full[idx+1:])
}

func joinSkills(positions []types.ResumePosition) string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range positions {
		for _, skill := range strings.Split(p.Skills, ",") {
			skill = strings.TrimSpace(skill)
			key := strings.ToLower(skill)
			if skill == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, skill)
		}
	}
	return strings.Join(out, ", ")
}
