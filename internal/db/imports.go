package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avery/staffdesk/internal/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	importChunkSize   = 100
	importConcurrency = 4
)

// peopleModules use email for duplicate detection; everything else uses name.
var peopleModules = map[string]bool{
	"job-seekers":     true,
	"hiring-managers": true,
}

// DedupeField returns the field used for duplicate detection in a module.
func DedupeField(entityType string) string {
	if peopleModules[entityType] {
		return "email"
	}
	return "name"
}

// ImportRecords performs a bulk import: per-record upsert honoring the
// duplicate options, a custom-label save, and an import_runs audit row.
// Records are processed in chunks with bounded concurrency; per-record
// failures are collected into the summary rather than aborting the run.
func (db *DB) ImportRecords(ctx context.Context, req types.ImportRequest) (*types.ImportSummary, error) {
	dedupeField := DedupeField(req.EntityType)

	rowErrors := make([][]string, len(req.Records))
	rowNumbers := make([]int, len(req.Records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)

	for start := 0; start < len(req.Records); start += importChunkSize {
		end := min(start+importChunkSize, len(req.Records))
		g.Go(func() error {
			for i := start; i < end; i++ {
				rowNumbers[i] = rowNumber(req.Records[i], i)
				rowErrors[i] = db.importOne(gctx, req.EntityType, dedupeField, req.Records[i], req.Options)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("import aborted: %w", err)
	}

	summary := types.ImportSummary{}
	for i, errs := range rowErrors {
		if len(errs) == 0 {
			summary.Successful++
			continue
		}
		summary.Failed++
		summary.Errors = append(summary.Errors, types.RowError{Row: rowNumbers[i], Errors: errs})
	}

	if len(req.FieldNameToLabel) > 0 {
		if err := db.SaveCustomFieldLabels(ctx, req.EntityType, req.FieldNameToLabel); err != nil {
			return nil, err
		}
	}

	if err := db.recordImportRun(ctx, req.EntityType, summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// importOne inserts or updates a single record and returns its errors, if any.
func (db *DB) importOne(ctx context.Context, entityType, dedupeField string, record map[string]any, opts types.ImportOptions) []string {
	key, _ := record[dedupeField].(string)
	key = strings.TrimSpace(key)
	if key == "" {
		return []string{fmt.Sprintf("Missing %s for duplicate detection", dedupeField)}
	}
	if dedupeField == "email" {
		key = strings.ToLower(key)
	}

	data := make(map[string]any, len(record))
	for k, v := range record {
		if k == "_row" {
			continue
		}
		data[k] = v
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return []string{fmt.Sprintf("Unencodable record: %v", err)}
	}

	if opts.UpdateExisting {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO records (entity_type, dedupe_key, data)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (entity_type, dedupe_key)
			 DO UPDATE SET data = records.data || $3, updated_at = NOW()`,
			entityType, key, payload,
		)
		if err != nil {
			return []string{fmt.Sprintf("Database error: %v", err)}
		}
		return nil
	}

	tag, err := db.pool.Exec(ctx,
		`INSERT INTO records (entity_type, dedupe_key, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (entity_type, dedupe_key) DO NOTHING`,
		entityType, key, payload,
	)
	if err != nil {
		return []string{fmt.Sprintf("Database error: %v", err)}
	}
	if tag.RowsAffected() == 0 {
		// skipDuplicates/importNewOnly still surface the skip so the
		// outcome explains why the counts don't add up to the file size
		return []string{fmt.Sprintf("Duplicate %s %q", dedupeField, key)}
	}
	return nil
}

func (db *DB) recordImportRun(ctx context.Context, entityType string, summary types.ImportSummary) error {
	errsJSON, err := json.Marshal(summary.Errors)
	if err != nil {
		return fmt.Errorf("failed to marshal import errors: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO import_runs (id, entity_type, successful, failed, errors)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), entityType, summary.Successful, summary.Failed, errsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to record import run: %w", err)
	}
	return nil
}

// rowNumber prefers the client-supplied _row marker; JSON decoding delivers it
// as float64. Without one, the ordinal position plus the header row is used.
func rowNumber(record map[string]any, index int) int {
	switch v := record["_row"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return index + 2
	}
}
