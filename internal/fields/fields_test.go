package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition_UnmarshalSnakeCase(t *testing.T) {
	var d Definition
	err := json.Unmarshal([]byte(`{
		"field_name": "firstName",
		"field_label": "First Name",
		"field_type": "text",
		"is_required": true,
		"is_hidden": false,
		"sort_order": 3
	}`), &d)
	require.NoError(t, err)
	assert.Equal(t, "firstName", d.Name)
	assert.Equal(t, "First Name", d.Label)
	assert.True(t, d.Required)
	assert.False(t, d.Hidden)
	assert.Equal(t, 3, d.SortOrder)
}

func TestDefinition_UnmarshalCamelCase(t *testing.T) {
	var d Definition
	err := json.Unmarshal([]byte(`{
		"name": "email",
		"label": "Email",
		"type": "email",
		"isRequired": true,
		"isHidden": true,
		"sortOrder": 1
	}`), &d)
	require.NoError(t, err)
	assert.Equal(t, "email", d.Name)
	assert.Equal(t, "Email", d.Label)
	assert.True(t, d.Required)
	assert.True(t, d.Hidden)
	assert.Equal(t, 1, d.SortOrder)
}

func TestDefinition_SnakeCaseWinsWhenBothPresent(t *testing.T) {
	var d Definition
	err := json.Unmarshal([]byte(`{"field_name": "a", "name": "b", "is_hidden": false, "isHidden": true}`), &d)
	require.NoError(t, err)
	assert.Equal(t, "a", d.Name)
	assert.False(t, d.Hidden)
}

func TestVisible(t *testing.T) {
	defs := []Definition{
		{Name: "a"},
		{Name: "b", Hidden: true},
		{Name: "c"},
	}
	visible := Visible(defs)
	require.Len(t, visible, 2)
	assert.Equal(t, "a", visible[0].Name)
	assert.Equal(t, "c", visible[1].Name)
}

func TestRequired(t *testing.T) {
	defs := []Definition{
		{Name: "a", Required: true},
		{Name: "b"},
	}
	req := Required(defs)
	require.Len(t, req, 1)
	assert.Equal(t, "a", req[0].Name)
}

func TestSortByOrder_Stable(t *testing.T) {
	defs := []Definition{
		{Name: "z", SortOrder: 2},
		{Name: "a", SortOrder: 1},
		{Name: "b", SortOrder: 1},
	}
	SortByOrder(defs)
	assert.Equal(t, "a", defs[0].Name)
	assert.Equal(t, "b", defs[1].Name)
	assert.Equal(t, "z", defs[2].Name)
}

func TestListResponse_PrefersCustomFields(t *testing.T) {
	r := ListResponse{
		Fields:       []Definition{{Name: "old"}},
		CustomFields: []Definition{{Name: "new"}},
	}
	picked := r.Pick()
	require.Len(t, picked, 1)
	assert.Equal(t, "new", picked[0].Name)

	r.CustomFields = nil
	picked = r.Pick()
	require.Len(t, picked, 1)
	assert.Equal(t, "old", picked[0].Name)
}
