// Package fields defines the canonical destination-field metadata for an entity
// module and the boundary adapter that normalizes the external wire format.
package fields

import (
	"encoding/json"
	"sort"
)

// Definition is the canonical form of one destination-system field.
type Definition struct {
	Name      string `json:"field_name"`
	Label     string `json:"field_label"`
	Type      string `json:"field_type"`
	Required  bool   `json:"is_required"`
	Hidden    bool   `json:"is_hidden"`
	SortOrder int    `json:"sort_order"`
}

// wireDefinition tolerates the key spellings the admin contract has used over
// time (snake_case and camelCase, plus bare "name"/"label"/"required"). All
// tolerance lives here; business logic only ever sees Definition.
type wireDefinition struct {
	FieldName  string `json:"field_name"`
	Name       string `json:"name"`
	FieldLabel string `json:"field_label"`
	Label      string `json:"label"`
	FieldType  string `json:"field_type"`
	Type       string `json:"type"`

	IsRequired  *bool `json:"is_required"`
	IsRequired2 *bool `json:"isRequired"`
	Required    *bool `json:"required"`

	IsHidden  *bool `json:"is_hidden"`
	IsHidden2 *bool `json:"isHidden"`
	Hidden    *bool `json:"hidden"`

	SortOrder  *int `json:"sort_order"`
	SortOrder2 *int `json:"sortOrder"`
}

// UnmarshalJSON decodes a definition from either key convention.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var w wireDefinition
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.Name = firstNonEmpty(w.FieldName, w.Name)
	d.Label = firstNonEmpty(w.FieldLabel, w.Label)
	d.Type = firstNonEmpty(w.FieldType, w.Type)
	d.Required = firstBool(w.IsRequired, w.IsRequired2, w.Required)
	d.Hidden = firstBool(w.IsHidden, w.IsHidden2, w.Hidden)
	d.SortOrder = firstInt(w.SortOrder, w.SortOrder2)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstBool(vals ...*bool) bool {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return false
}

func firstInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// Visible filters out hidden definitions.
func Visible(defs []Definition) []Definition {
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if !d.Hidden {
			out = append(out, d)
		}
	}
	return out
}

// Required filters down to required definitions.
func Required(defs []Definition) []Definition {
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if d.Required {
			out = append(out, d)
		}
	}
	return out
}

// SortByOrder sorts definitions by sort order ascending, stably.
func SortByOrder(defs []Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].SortOrder < defs[j].SortOrder
	})
}

// ListResponse is the field-management API payload. Older clients read "fields",
// newer ones prefer "customFields"; both carry the same visible definitions.
type ListResponse struct {
	Fields       []Definition `json:"fields"`
	CustomFields []Definition `json:"customFields"`
}

// Pick returns whichever key of a field-management response is populated,
// preferring customFields.
func (r *ListResponse) Pick() []Definition {
	if len(r.CustomFields) > 0 {
		return r.CustomFields
	}
	return r.Fields
}
