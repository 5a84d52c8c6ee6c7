package hospital

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/zjrosen/rounds/internal/registration"
)

// ErrEmptyToken is returned when registration succeeds without issuing a token.
var ErrEmptyToken = errors.New("backend returned an empty token")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Op         string
	StatusCode int
	Message    string // Server-provided message, if any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// errorMessage extracts a human readable message from an error response body.
// Backends answer with {"message": "..."} or {"error": "..."}; plain text
// bodies are used as-is when short.
func errorMessage(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}

	if len(trimmed) > 200 || strings.HasPrefix(trimmed, "<") {
		return ""
	}
	return trimmed
}

// UserMessage turns any error from this package or the registration domain
// into a short sentence fit for an alert. The raw error belongs in the log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validation *registration.ValidationError
	if errors.As(err, &validation) {
		return "Please fill in: " + strings.Join(validation.Missing, ", ")
	}
	if errors.Is(err, registration.ErrNotVerified) {
		return "Verify your email before signing up."
	}
	if errors.Is(err, ErrEmptyToken) {
		return "Registration did not return a session. Please try again."
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fmt.Sprintf("Request failed (status %d).", apiErr.StatusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "The hospital server did not respond in time."
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "The hospital server did not respond in time."
		}
		return "Could not reach the hospital server."
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled."
	}

	return "Something went wrong. Run with --debug and check debug.log for details."
}
