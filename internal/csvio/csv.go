// Package csvio converts uploaded spreadsheet files into rows of string fields.
package csvio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest upload the importer will parse.
const MaxFileSize = 10 << 20 // 10 MB

// ErrEmptyFile is returned when a parsed file contains no rows.
var ErrEmptyFile = fmt.Errorf("CSV file is empty")

// Parse tokenizes raw CSV text into rows of fields in a single left-to-right scan.
// Quoted fields may contain commas and newlines; a doubled quote inside a quoted
// field unescapes to one literal quote. Fields are trimmed of surrounding
// whitespace, so intentionally whitespace-padded values are not preserved.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	flushField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	flushRow := func() {
		if field.Len() > 0 || len(row) > 0 {
			flushField()
			rows = append(rows, row)
			row = nil
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			flushField()
		case (c == '\n' || c == '\r') && !inQuotes:
			flushRow()
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			field.WriteByte(c)
		}
	}
	flushRow()

	return rows
}

// Encode renders rows back to CSV text. Fields containing commas, quotes or
// newlines are quoted, with internal quotes doubled, so the output survives a
// Parse round trip.
func Encode(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(field, ",\"\n\r") {
				b.WriteByte('"')
				b.WriteString(strings.ReplaceAll(field, `"`, `""`))
				b.WriteByte('"')
			} else {
				b.WriteString(field)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Document is a parsed spreadsheet: a header row followed by data rows.
type Document struct {
	headers []string
	rows    [][]string
}

// NewDocument splits parsed rows into headers and data.
// The first row is always the header row.
func NewDocument(rows [][]string) (*Document, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return &Document{headers: rows[0], rows: rows[1:]}, nil
}

// Headers returns the header row.
func (d *Document) Headers() []string { return d.headers }

// Rows returns the data rows (everything after the header).
func (d *Document) Rows() [][]string { return d.rows }

// ParseReader reads at most MaxFileSize bytes from r and tokenizes the content.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("file exceeds %d MB limit", MaxFileSize>>20)
	}
	return NewDocument(Parse(string(data)))
}

// ParseUpload dispatches on the file extension (case-insensitive): .csv goes
// through the tokenizer, .xlsx through the spreadsheet reader. Anything else is
// rejected before any parsing is attempted.
func ParseUpload(filename string, r io.Reader) (*Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseReader(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q: please select a .csv or .xlsx file", filepath.Ext(filename))
	}
}
