package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AuthenticationError means the request carried no token or a bad one.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}

// NotFoundError means the requested resource does not exist (or belongs to
// someone else, which we report the same way).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ValidationError means an AI response failed a structural or numeric
// invariant. The calculation is rejected, never silently corrected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps a failure from an external collaborator (LLM, FX
// provider, search API) with enough context to tell which one.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ConfigurationError means a required API key or setting is missing. Hint
// tells the operator how to fix it.
type ConfigurationError struct {
	Setting string
	Hint    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration %s (%s)", e.Setting, e.Hint)
}

// HTTPStatus maps an error to the status code handlers should respond with.
func HTTPStatus(err error) int {
	var (
		authErr *AuthenticationError
		nfErr   *NotFoundError
		valErr  *ValidationError
		upErr   *UpstreamError
		cfgErr  *ConfigurationError
	)
	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &nfErr):
		return http.StatusNotFound
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upErr):
		return http.StatusBadGateway
	case errors.As(err, &cfgErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
