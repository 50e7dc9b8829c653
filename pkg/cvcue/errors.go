package cvcue

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrNoSessionCookie     = errors.New("login response did not set a session cookie")
	ErrSessionFileRequired = errors.New("session file path is required")
)

// ConfigurationError reports credentials that could not be resolved from
// either explicit configuration or the environment. Every missing field is
// listed, not just the first.
type ConfigurationError struct {
	Missing []string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required credentials: %s", strings.Join(e.Missing, ", "))
}

// AuthenticationError reports a login rejected by the API. It carries the
// HTTP status and response body for diagnostics.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("authentication failed: status %d", e.StatusCode)
	}

	return fmt.Sprintf("authentication failed: status %d: %s", e.StatusCode, e.Body)
}

// InvalidFilterError reports a filter expression that cannot be serialized:
// an unknown operator name or an empty term list. It is raised before any
// network call.
type InvalidFilterError struct {
	Message string
}

// Error implements the error interface.
func (e *InvalidFilterError) Error() string {
	return "invalid filter: " + e.Message
}

// APIError represents a non-auth HTTP failure from the CV-CUE API. The
// response body is surfaced verbatim.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}

	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound checks if the error is a not found API error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error reports an authentication failure,
// either a rejected login or a 401 from a resource endpoint.
func IsUnauthorized(err error) bool {
	authErr := &AuthenticationError{}
	if errors.As(err, &authErr) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}
