package api

import (
	"errors"
	"fmt"
)

// AuthError indicates that authentication has failed or expired. It is
// returned when the backend answers 401, so callers can prompt for a
// fresh access token instead of retrying.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// ErrorResponse is the error body returned by the WorkSphere backend.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}
