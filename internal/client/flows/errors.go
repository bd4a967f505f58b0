package flows

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrBusy rejects a submission while a prior one is still in flight.
	ErrBusy = errors.New("request already in flight")

	// ErrInvalidStep rejects an operation that does not belong to the
	// flow's current step.
	ErrInvalidStep = errors.New("operation not valid in current step")

	// ErrIncompleteCode rejects verification before all 6 digits are in.
	ErrIncompleteCode = errors.New("verification code incomplete")

	// ErrResendCooldown throttles resend requests client-side, mirroring
	// the server's rate limit.
	ErrResendCooldown = errors.New("please wait before requesting another code")
)

// FieldErrors maps input field names to validation messages. It is returned
// before any network call is made; an empty map means the input is valid.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}
