package server

import (
	"io"
	"net/http"

	"github.com/avery/staffdesk/internal/csvio"
	"github.com/avery/staffdesk/internal/types"
)

// ---------------------------------------------------------------------
// Resume Parsing Handlers
// ---------------------------------------------------------------------

// handleParseResume accepts a multipart resume upload and returns the
// structured extraction.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Resume parsing is not configured")
		return
	}

	if err := r.ParseMultipartForm(csvio.MaxFileSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	if header.Size > csvio.MaxFileSize {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "File exceeds 10MB limit")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, csvio.MaxFileSize))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read file: "+err.Error())
		return
	}

	result, err := s.extractor.ParseFile(r.Context(), header.Filename, data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ResumeParseResponse{Result: *result})
}
