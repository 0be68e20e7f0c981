package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avery/staffdesk/internal/types"
	"github.com/go-playground/validator/v10"
)

// ---------------------------------------------------------------------
// Data Uploader Handlers
// ---------------------------------------------------------------------

// handleImport persists a batch of mapped records.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	summary, err := s.db.ImportRecords(r.Context(), req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Import failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ImportResponse{Summary: *summary})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		msg := "Validation failed:"
		for _, fieldErr := range validationErrors {
			msg += fmt.Sprintf(" %s (%s)", fieldErr.Field(), fieldErr.Tag())
		}
		return msg
	}
	return err.Error()
}
