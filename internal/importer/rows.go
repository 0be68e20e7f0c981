// Package importer implements the bulk-import pipeline: parsed rows, the
// validator, and the select/map/preview/upload session state machine.
package importer

import (
	"strings"

	"github.com/avery/staffdesk/internal/csvio"
	"github.com/avery/staffdesk/internal/mapping"
)

// ParsedRow is one CSV data row. Raw is fixed at parse time; Mapped is derived
// from the current field mapping; Errors is owned by the validator and decides
// whether the row is submittable. RowNumber is 1-based and accounts for the
// header row (data row index + 2).
type ParsedRow struct {
	RowNumber int
	Raw       map[string]string
	Mapped    map[string]any
	Errors    []string
}

// BuildRows fixes the raw cell map for every data row of a document. Rows
// shorter than the header are padded with empty cells; extra cells are ignored.
func BuildRows(doc *csvio.Document) []ParsedRow {
	headers := doc.Headers()
	data := doc.Rows()

	rows := make([]ParsedRow, len(data))
	for i, cells := range data {
		raw := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(cells) {
				raw[h] = cells[j]
			} else {
				raw[h] = ""
			}
		}
		rows[i] = ParsedRow{RowNumber: i + 2, Raw: raw}
	}
	return rows
}

// Remap recomputes the Mapped view of every row from the current mapping:
// only mapped fields are included, and only where the raw cell is non-empty
// after trimming.
func Remap(rows []ParsedRow, m mapping.FieldMapping) {
	for i := range rows {
		mapped := make(map[string]any)
		for field, header := range m {
			if strings.TrimSpace(header) == "" {
				continue
			}
			value := strings.TrimSpace(rows[i].Raw[header])
			if value != "" {
				mapped[field] = value
			}
		}
		rows[i].Mapped = mapped
	}
}

// HasErrors reports whether the validator flagged this row.
func (r *ParsedRow) HasErrors() bool { return len(r.Errors) > 0 }
