package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a business error reported by the API. Message holds the server's
// text verbatim so callers can surface it unchanged.
type Error struct {
	Status  int
	Message string

	// Extra context some auth endpoints attach to failures.
	AttemptsRemaining         *int
	LockedUntil               string
	EmailVerificationRequired bool
	Email                     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401-class errors.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// errorBody mirrors the shapes the backend uses for failures: "error" is a
// string or a list of strings, "detail" comes from DRF itself.
type errorBody struct {
	Error                     json.RawMessage `json:"error"`
	Detail                    string          `json:"detail"`
	Message                   string          `json:"message"`
	AttemptsRemaining         *int            `json:"attempts_remaining"`
	LockedUntil               string          `json:"locked_until"`
	EmailVerificationRequired bool            `json:"email_verification_required"`
	Email                     string          `json:"email"`
}

// parseError turns a non-2xx response into an *Error. A response with no
// parsable structured body falls back to the generic status text.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case len(eb.Error) > 0:
			var s string
			if json.Unmarshal(eb.Error, &s) == nil {
				apiErr.Message = s
			} else {
				var list []string
				if json.Unmarshal(eb.Error, &list) == nil {
					apiErr.Message = strings.Join(list, "; ")
				}
			}
		case eb.Detail != "":
			apiErr.Message = eb.Detail
		case eb.Message != "":
			apiErr.Message = eb.Message
		}
		apiErr.AttemptsRemaining = eb.AttemptsRemaining
		apiErr.LockedUntil = eb.LockedUntil
		apiErr.EmailVerificationRequired = eb.EmailVerificationRequired
		apiErr.Email = eb.Email
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
