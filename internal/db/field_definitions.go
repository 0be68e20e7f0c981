package db

import (
	"context"
	"fmt"

	"github.com/avery/staffdesk/internal/fields"
)

// ListFieldDefinitions returns all field definitions for an entity type,
// sorted by sort order.
func (db *DB) ListFieldDefinitions(ctx context.Context, entityType string) ([]fields.Definition, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT field_name, field_label, field_type, is_required, is_hidden, sort_order
		 FROM field_definitions WHERE entity_type = $1
		 ORDER BY sort_order ASC, field_name ASC`,
		entityType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list field definitions: %w", err)
	}
	defer rows.Close()

	var defs []fields.Definition
	for rows.Next() {
		var d fields.Definition
		if err := rows.Scan(&d.Name, &d.Label, &d.Type, &d.Required, &d.Hidden, &d.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan field definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// UpsertFieldDefinitions replaces or inserts definitions for an entity type.
func (db *DB) UpsertFieldDefinitions(ctx context.Context, entityType string, defs []fields.Definition) error {
	for _, d := range defs {
		if d.Name == "" {
			continue
		}
		_, err := db.pool.Exec(ctx,
			`INSERT INTO field_definitions
				(entity_type, field_name, field_label, field_type, is_required, is_hidden, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (entity_type, field_name) DO UPDATE SET
				field_label = $3, field_type = $4, is_required = $5, is_hidden = $6, sort_order = $7`,
			entityType, d.Name, d.Label, d.Type, d.Required, d.Hidden, d.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert field definition %s: %w", d.Name, err)
		}
	}
	return nil
}

// LoadCustomFieldLabels returns the stored field_name -> field_label map
// for an entity type.
func (db *DB) LoadCustomFieldLabels(ctx context.Context, entityType string) (map[string]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT field_name, field_label FROM custom_field_labels WHERE entity_type = $1`,
		entityType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom field labels: %w", err)
	}
	defer rows.Close()

	labels := make(map[string]string)
	for rows.Next() {
		var name, label string
		if err := rows.Scan(&name, &label); err != nil {
			return nil, fmt.Errorf("failed to scan custom field label: %w", err)
		}
		labels[name] = label
	}
	return labels, rows.Err()
}

// SaveCustomFieldLabels stores the field_name -> field_label map submitted
// alongside an import, so later exports can render custom columns.
func (db *DB) SaveCustomFieldLabels(ctx context.Context, entityType string, labels map[string]string) error {
	for name, label := range labels {
		if name == "" || label == "" {
			continue
		}
		_, err := db.pool.Exec(ctx,
			`INSERT INTO custom_field_labels (entity_type, field_name, field_label)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (entity_type, field_name) DO UPDATE SET field_label = $3`,
			entityType, name, label,
		)
		if err != nil {
			return fmt.Errorf("failed to save custom field label %s: %w", name, err)
		}
	}
	return nil
}
