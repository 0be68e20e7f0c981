package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// TokenRequest carries the admin API key exchanged for a bearer token.
type TokenRequest struct {
	Key string `json:"key" validate:"required"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// handleToken exchanges a valid admin API key for a short-lived JWT.
// The key itself is never stored, only its bcrypt hash.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Key is required")
		return
	}

	if !s.adminKeys.VerifyKey(req.Key) {
		err := &ErrInvalidKey{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(uuid.New())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, TokenResponse{Token: token})
}
