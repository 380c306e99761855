// Package server provides the HTTP REST API for the expert finder.
package server

import (
	"fmt"
	"net/http"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrProfileNotFound indicates a profile was not found
type ErrProfileNotFound struct {
	URNID string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.URNID)
}

// ErrStatsUnavailable indicates population statistics have never been computed
type ErrStatsUnavailable struct{}

func (e *ErrStatsUnavailable) Error() string {
	return "population statistics are not available yet"
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
	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrProfileNotFound:
		return http.StatusNotFound
	case *ErrStatsUnavailable:
		return http.StatusServiceUnavailable
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
