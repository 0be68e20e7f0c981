package server

import (
	"encoding/json"
	"net/http"

	"github.com/avery/staffdesk/internal/fields"
)

// ---------------------------------------------------------------------
// Field Management Handlers
// ---------------------------------------------------------------------

// handleListFields returns the field definitions for an entity type.
// Both the legacy "fields" key and the newer "customFields" key carry the
// same visible definitions, with any stored custom labels applied.
func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("entityType")
	if entityType == "" {
		s.errorResponse(w, http.StatusBadRequest, "Entity type is required")
		return
	}

	defs, err := s.db.ListFieldDefinitions(r.Context(), entityType)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(defs) == 0 {
		notFound := &ErrUnknownEntityType{EntityType: entityType}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	labels, err := s.db.LoadCustomFieldLabels(r.Context(), entityType)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	for i := range defs {
		if label, ok := labels[defs[i].Name]; ok {
			defs[i].Label = label
		}
	}

	visible := fields.Visible(defs)
	fields.SortByOrder(visible)

	s.jsonResponse(w, http.StatusOK, fields.ListResponse{
		Fields:       visible,
		CustomFields: visible,
	})
}

// handleSaveFields replaces the field definitions for an entity type.
func (s *Server) handleSaveFields(w http.ResponseWriter, r *http.Request) {
	entityType := r.PathValue("entityType")
	if entityType == "" {
		s.errorResponse(w, http.StatusBadRequest, "Entity type is required")
		return
	}

	var defs []fields.Definition
	if err := json.NewDecoder(r.Body).Decode(&defs); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(defs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "At least one field definition is required")
		return
	}

	if err := s.db.UpsertFieldDefinitions(r.Context(), entityType, defs); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]int{"saved": len(defs)})
}
