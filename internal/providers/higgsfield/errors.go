package higgsfield

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"higgsfield-mcp/internal/domain"
)

// APIError is returned for any non-2xx provider response. It keeps the HTTP
// status and the provider's message unchanged.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	text := http.StatusText(e.StatusCode)
	if e.Message == "" {
		return fmt.Sprintf("higgsfield: %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("higgsfield: %d %s: %s", e.StatusCode, text, e.Message)
}

// Unwrap maps the status onto the domain error taxonomy so callers can use
// errors.Is(err, domain.ErrUnauthorized) and friends.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthorized
	case e.StatusCode == http.StatusPaymentRequired:
		return domain.ErrInsufficientBalance
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return domain.ErrProviderFailure
	}
}

// AsAPIError extracts *APIError from an error.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

type errorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func newAPIError(status int, raw []byte) *APIError {
	body := strings.TrimSpace(string(raw))
	return &APIError{
		StatusCode: status,
		Message:    extractMessage(raw, body),
		Body:       body,
	}
}

func extractMessage(raw []byte, body string) string {
	var decoded errorResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return body
	}
	if len(decoded.Detail) > 0 {
		var text string
		if err := json.Unmarshal(decoded.Detail, &text); err == nil && text != "" {
			return text
		}
		var issues []validationIssue
		if err := json.Unmarshal(decoded.Detail, &issues); err == nil && len(issues) > 0 {
			parts := make([]string, 0, len(issues))
			for _, issue := range issues {
				parts = append(parts, formatIssue(issue))
			}
			return strings.Join(parts, "; ")
		}
	}
	if decoded.Message != "" {
		return decoded.Message
	}
	if decoded.Error != "" {
		return decoded.Error
	}
	return body
}

func formatIssue(issue validationIssue) string {
	if len(issue.Loc) == 0 {
		return issue.Msg
	}
	loc := make([]string, 0, len(issue.Loc))
	for _, part := range issue.Loc {
		loc = append(loc, fmt.Sprint(part))
	}
	return strings.Join(loc, ".") + ": " + issue.Msg
}
