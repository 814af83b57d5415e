package metascrape

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to transport-level concerns:
// EINVALID covers bad caller input, EUNAVAILABLE covers unreachable or
// misbehaving upstream services (the search backend, target pages, the LLM
// API), ENOTFOUND covers missing resources, and EINTERNAL is the catch-all
// for everything the caller cannot act on.
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("metascrape error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// FormatError renders an error as the markdown payload surfaced at the
// caller boundary. Every failure path funnels through this so callers never
// see a raw Go error.
func FormatError(err error) string {
	return fmt.Sprintf(`## Error Occurred

%s

### Troubleshooting Steps:

1. Check your internet connection
2. Verify that the SearxNG instance is online and accessible
3. Try using a different search engine or query
4. If using a custom instance, ensure the URL is correct
`, ErrorMessage(err))
}
