package csvio

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an .xlsx workbook into the same row shape
// the CSV tokenizer produces, so the rest of the pipeline is format-agnostic.
// Cells are trimmed the same way CSV fields are.
func ParseXLSX(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(io.LimitReader(r, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	rows := make([][]string, 0, len(raw))
	for _, cells := range raw {
		row := make([]string, len(cells))
		empty := true
		for i, cell := range cells {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				empty = false
			}
		}
		// GetRows pads trailing blank rows; drop fully empty ones
		if !empty {
			rows = append(rows, row)
		}
	}

	return NewDocument(rows)
}
