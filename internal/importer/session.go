package importer

import (
	"context"
	"fmt"

	"github.com/avery/staffdesk/internal/csvio"
	"github.com/avery/staffdesk/internal/fields"
	"github.com/avery/staffdesk/internal/mapping"
	"github.com/avery/staffdesk/internal/types"
)

// Stage is one step of the import wizard.
type Stage string

// Wizard stages, strictly forward-progressing except Back (preview -> map)
// and Reset (anywhere -> select).
const (
	StageSelect  Stage = "select"
	StageMap     Stage = "map"
	StagePreview Stage = "preview"
	StageUpload  Stage = "upload"
)

// Submitter sends a prepared import request to the backend.
type Submitter interface {
	Import(ctx context.Context, req types.ImportRequest) (*types.ImportSummary, error)
}

// Session drives one bulk import from file selection through upload. It is not
// safe for concurrent use: like the UI it replaces, all mutation happens from
// a single caller in response to discrete events.
type Session struct {
	submitter Submitter

	stage      Stage
	entityType string
	defs       []fields.Definition
	headers    []string
	rows       []ParsedRow
	mapping    mapping.FieldMapping
	lastResult *ValidationResult
	outcome    *UploadOutcome

	// cancel aborts an in-flight submit when the session is reset or torn
	// down; generation makes a late completion detectable.
	cancel     context.CancelFunc
	generation int
}

// NewSession creates an import session in the select stage.
func NewSession(submitter Submitter) *Session {
	return &Session{
		submitter: submitter,
		stage:     StageSelect,
		mapping:   make(mapping.FieldMapping),
	}
}

// Stage returns the current wizard stage.
func (s *Session) Stage() Stage { return s.stage }

// Rows returns the parsed data rows.
func (s *Session) Rows() []ParsedRow { return s.rows }

// Mapping returns the current field mapping.
func (s *Session) Mapping() mapping.FieldMapping { return s.mapping }

// Outcome returns the upload outcome, or nil before a successful submit.
func (s *Session) Outcome() *UploadOutcome { return s.outcome }

// SelectModule sets the destination module and its field definitions.
// Definitions are filtered to visible fields and sorted by sort order. Changing
// the module discards rows, mapping and errors from any previous selection.
func (s *Session) SelectModule(entityType string, defs []fields.Definition) {
	visible := fields.Visible(defs)
	fields.SortByOrder(visible)

	changed := s.entityType != "" && s.entityType != entityType
	s.entityType = entityType
	s.defs = visible

	if changed {
		s.clearFile()
		return
	}
	s.autoMapIfUntouched()
	s.advanceToMap()
}

// LoadFile parses an uploaded file and, if a module is already selected,
// advances to the map stage. An empty or unparsable file is rejected outright
// with no partial state retained.
func (s *Session) LoadFile(doc *csvio.Document) error {
	if doc == nil {
		return csvio.ErrEmptyFile
	}
	if len(doc.Headers()) == 0 {
		return csvio.ErrEmptyFile
	}

	s.headers = doc.Headers()
	s.rows = BuildRows(doc)
	s.mapping = make(mapping.FieldMapping)
	s.lastResult = nil

	s.autoMapIfUntouched()
	s.advanceToMap()
	return nil
}

// autoMapIfUntouched computes the heuristic mapping, but only while the
// current mapping is empty. Once the user has started editing, a late
// definition fetch must never clobber their choices.
func (s *Session) autoMapIfUntouched() {
	if len(s.mapping) != 0 || len(s.headers) == 0 || len(s.defs) == 0 {
		return
	}
	s.mapping = mapping.AutoMap(s.headers, s.defs)
	Remap(s.rows, s.mapping)
}

func (s *Session) advanceToMap() {
	if s.stage == StageSelect && s.entityType != "" && len(s.headers) > 0 {
		s.stage = StageMap
	}
}

// SetMapping records a user override for one field. A blank header means
// "skip this field".
func (s *Session) SetMapping(fieldName, header string) {
	s.mapping.Set(fieldName, header)
	Remap(s.rows, s.mapping)
}

// Validate recomputes the validation snapshot for the current mapping and rows.
func (s *Session) Validate() ValidationResult {
	result := Validate(s.entityType, s.mapping, s.defs, s.rows)
	s.lastResult = &result
	return result
}

// ToPreview attempts the map -> preview transition. It is refused, with the
// validation errors attached, unless the whole row set is valid; the caller
// may then fix the mapping, or call SkipInvalidRows and retry.
func (s *Session) ToPreview() error {
	if s.stage != StageMap {
		return fmt.Errorf("cannot preview from stage %q", s.stage)
	}
	result := s.Validate()
	if !result.IsValid {
		return &ValidationFailedError{Result: result}
	}
	Remap(s.rows, s.mapping)
	s.stage = StagePreview
	return nil
}

// Back returns from preview to the mapping editor without losing any state.
func (s *Session) Back() error {
	if s.stage != StagePreview {
		return fmt.Errorf("cannot go back from stage %q", s.stage)
	}
	s.stage = StageMap
	return nil
}

// SkipInvalidRows drops every row the validator flagged and revalidates,
// returning how many rows were discarded. This is the "skip incomplete
// records" escape hatch on the map -> preview guard.
func (s *Session) SkipInvalidRows() int {
	if s.lastResult == nil {
		s.Validate()
	}

	kept := s.rows[:0]
	dropped := 0
	for _, row := range s.rows {
		if row.HasErrors() {
			dropped++
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	s.Validate()
	return dropped
}

// Submit performs the preview -> upload transition: rows with errors are
// excluded as a last defense, the remainder is sent, and on success the
// session lands in the terminal upload stage. A failed or cancelled request
// leaves the session at preview so the user can retry; retries are never
// automatic.
func (s *Session) Submit(ctx context.Context, opts types.ImportOptions) (*UploadOutcome, error) {
	if s.stage != StagePreview {
		return nil, fmt.Errorf("cannot submit from stage %q", s.stage)
	}

	records := make([]map[string]any, 0, len(s.rows))
	for i := range s.rows {
		if s.rows[i].HasErrors() {
			continue
		}
		record := make(map[string]any, len(s.rows[i].Mapped)+1)
		for k, v := range s.rows[i].Mapped {
			record[k] = v
		}
		record["_row"] = s.rows[i].RowNumber
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records to import")
	}

	nameToLabel := make(map[string]string, len(s.defs))
	for _, def := range s.defs {
		if s.mapping.IsMapped(def.Name) {
			nameToLabel[def.Name] = labelOf(def)
		}
	}

	req := types.ImportRequest{
		EntityType:       s.entityType,
		Records:          records,
		FieldNameToLabel: nameToLabel,
		Options:          opts,
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.generation
	defer cancel()

	summary, err := s.submitter.Import(ctx, req)
	if gen != s.generation {
		// The session was reset while the request was in flight; the stale
		// completion must not write into the new session state.
		return nil, context.Canceled
	}
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}

	outcome := OutcomeFromSummary(*summary)
	s.outcome = &outcome
	s.stage = StageUpload
	return &outcome, nil
}

// Reset cancels any in-flight submit and returns the session to the select
// stage with all row, mapping and error state cleared.
func (s *Session) Reset() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.entityType = ""
	s.defs = nil
	s.clearFile()
	s.outcome = nil
	s.stage = StageSelect
}

func (s *Session) clearFile() {
	s.headers = nil
	s.rows = nil
	s.mapping = make(mapping.FieldMapping)
	s.lastResult = nil
	s.stage = StageSelect
}

// ValidationFailedError carries the validation snapshot of a refused
// map -> preview transition.
type ValidationFailedError struct {
	Result ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", len(e.Result.Errors))
}
