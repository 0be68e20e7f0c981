package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/avery/staffdesk/internal/fields"
	"github.com/avery/staffdesk/internal/mapping"
)

// emailPattern is deliberately loose: anything shaped user@host.tld passes.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationResult is a snapshot of mapping and row validity, recomputed on
// demand and never persisted.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate checks required-field coverage at the mapping level and
// required-value presence per row. It overwrites each row's Errors slice, so
// repeated calls with unchanged inputs yield identical results.
//
// Required fields come from the module's definitions, never a hardcoded list.
// A malformed value in a field mapped to the system name "email" is a warning,
// not an error; warnings never block submission.
func Validate(entityType string, m mapping.FieldMapping, defs []fields.Definition, rows []ParsedRow) ValidationResult {
	var result ValidationResult

	if strings.TrimSpace(entityType) == "" {
		result.Errors = append(result.Errors, "No module selected")
		return result
	}

	required := fields.Required(defs)

	// Mapping-level check: required fields with no (or blank) mapping are
	// reported once, not per row.
	var unmappedLabels []string
	for _, def := range required {
		if !m.IsMapped(def.Name) {
			unmappedLabels = append(unmappedLabels, labelOf(def))
		}
	}
	if len(unmappedLabels) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Required fields not mapped: %s", strings.Join(unmappedLabels, ", ")))
	}

	emailHeader := ""
	if m.IsMapped("email") {
		emailHeader = m["email"]
	}

	for i := range rows {
		row := &rows[i]
		row.Errors = nil

		for _, def := range required {
			if !m.IsMapped(def.Name) {
				continue
			}
			if strings.TrimSpace(row.Raw[m[def.Name]]) == "" {
				row.Errors = append(row.Errors,
					fmt.Sprintf("Row %d: Missing required field %q", row.RowNumber, labelOf(def)))
			}
		}

		if emailHeader != "" {
			if value := strings.TrimSpace(row.Raw[emailHeader]); value != "" && !emailPattern.MatchString(value) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Row %d: Invalid email format %q", row.RowNumber, value))
			}
		}

		result.Errors = append(result.Errors, row.Errors...)
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func labelOf(def fields.Definition) string {
	if def.Label != "" {
		return def.Label
	}
	return def.Name
}
