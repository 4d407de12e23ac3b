package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the error classes the guard produces.
var (
	// ErrSessionExpired is returned in place of the underlying 401/403 once
	// the guard has taken over: the forced logout supersedes whatever the
	// caller was doing. Callers match it with errors.Is and stand down.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoResponse wraps transport failures where no HTTP response arrived.
	ErrNoResponse = errors.New("no response from server")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Path, e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not a
// backend response error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// duplicateKeywords classify a registration failure as a duplicate-value
// error by inspecting the server's human-readable message. The backend does
// not return structured error codes yet; once it does this heuristic goes
// away. TODO replace with a server-provided error kind when the backend adds one.
var duplicateKeywords = []string{"duplicate", "already", "exists", "중복"}

// IsDuplicateErr reports whether err looks like a duplicate-id or
// duplicate-email rejection from registration or the pre-auth checks.
func IsDuplicateErr(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	for _, kw := range duplicateKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
