// Package server provides the HTTP REST API for the bulk record importer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avery/staffdesk/internal/handoff"
	"github.com/avery/staffdesk/internal/parsing"
)

// ErrUnknownEntityType indicates the requested module has no field definitions.
type ErrUnknownEntityType struct {
	EntityType string
}

func (e *ErrUnknownEntityType) Error() string {
	return fmt.Sprintf("unknown entity type: %s", e.EntityType)
}

// ErrInvalidKey indicates an admin API key that did not match the stored hash.
type ErrInvalidKey struct{}

func (e *ErrInvalidKey) Error() string {
	return "invalid API key"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var apiErr *parsing.APICallError
	var parseErr *parsing.ParseError
	var schemaErr *parsing.SchemaError
	switch {
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr), errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, handoff.ErrEmpty):
		return http.StatusNotFound
	}

	switch err.(type) {
	case *ErrUnknownEntityType:
		return http.StatusNotFound
	case *ErrInvalidKey:
		return http.StatusUnauthorized
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
