package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avery/staffdesk/internal/handoff"
	"github.com/avery/staffdesk/internal/types"
)

// ---------------------------------------------------------------------
// Pending File Handlers
// ---------------------------------------------------------------------

// handleStagePendingFile stores a file for a later one-shot pickup under the
// given key, replacing any file already staged there.
func (s *Server) handleStagePendingFile(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		s.errorResponse(w, http.StatusBadRequest, "Key is required")
		return
	}

	var file types.PendingFile
	if err := json.NewDecoder(r.Body).Decode(&file); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if file.Name == "" || file.Base64 == "" {
		s.errorResponse(w, http.StatusBadRequest, "Name and base64 content are required")
		return
	}
	if _, err := handoff.Decode(&file); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Content is not valid base64")
		return
	}

	ttl := handoff.DefaultTTL
	if raw := r.URL.Query().Get("ttl"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid ttl")
			return
		}
		ttl = parsed
	}

	if err := s.mailbox.Put(r.Context(), key, file, ttl); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to stage file: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"key": key})
}

// handleTakePendingFile removes and returns the staged file for a key.
// A second take for the same key returns 404.
func (s *Server) handleTakePendingFile(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		s.errorResponse(w, http.StatusBadRequest, "Key is required")
		return
	}

	file, err := s.mailbox.Take(r.Context(), key)
	if err != nil {
		if status := HTTPStatus(err); status == http.StatusNotFound {
			s.errorResponse(w, status, "No pending file for key")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to take file: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, file)
}
