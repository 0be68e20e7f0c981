package importer

import (
	"fmt"

	"github.com/avery/staffdesk/internal/types"
)

// maxDisplayedErrors bounds how many per-row error messages an outcome keeps.
const maxDisplayedErrors = 20

// UploadOutcome is the user-facing result of a bulk import submission.
type UploadOutcome struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
	// Truncated is how many error messages were dropped beyond the display cap.
	Truncated int `json:"truncated,omitempty"`
}

// OutcomeFromSummary flattens a server import summary into display form.
// Error messages are rendered as "Row {n}: {message}" and capped at the first
// twenty; the aggregate counts always reflect the full summary.
func OutcomeFromSummary(summary types.ImportSummary) UploadOutcome {
	outcome := UploadOutcome{
		Success: summary.Successful,
		Failed:  summary.Failed,
	}

	total := 0
	for _, rowErr := range summary.Errors {
		for _, msg := range rowErr.Errors {
			total++
			if len(outcome.Errors) >= maxDisplayedErrors {
				continue
			}
			if rowErr.Row > 0 {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("Row %d: %s", rowErr.Row, msg))
			} else {
				outcome.Errors = append(outcome.Errors, msg)
			}
		}
	}
	outcome.Truncated = total - len(outcome.Errors)

	return outcome
}
