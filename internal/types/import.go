// Package types defines the wire types shared between the importer pipeline,
// the HTTP API and the CLI.
package types

// ImportOptions controls duplicate handling during a bulk import.
type ImportOptions struct {
	UpdateExisting bool `json:"updateExisting"`
	SkipDuplicates bool `json:"skipDuplicates"`
	ImportNewOnly  bool `json:"importNewOnly"`
}

// ImportRequest is the bulk-import payload: the destination module, the mapped
// records, and an optional field_name -> field_label map used for server-side
// custom-field storage.
type ImportRequest struct {
	EntityType       string            `json:"entityType" validate:"required"`
	Records          []map[string]any  `json:"records" validate:"required,min=1"`
	FieldNameToLabel map[string]string `json:"fieldNameToLabel,omitempty"`
	Options          ImportOptions     `json:"options"`
}

// RowError describes the failures of one submitted record.
type RowError struct {
	Row    int      `json:"row,omitempty"`
	Errors []string `json:"errors"`
}

// ImportSummary is the server's account of a bulk import.
type ImportSummary struct {
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	Errors     []RowError `json:"errors,omitempty"`
}

// ImportResponse wraps the summary the import endpoint returns.
type ImportResponse struct {
	Summary ImportSummary `json:"summary"`
}
