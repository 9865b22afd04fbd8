package module

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is wrapped by every module query syntax error.
	ErrInvalidQuery = errors.New("invalid module query")

	// ErrNoRestrictions is returned for a query whose sections are all
	// unconstrained, since it would place no constraint on any module.
	ErrNoRestrictions = errors.New("no restrictions in query")
)

// SyntaxError reports a malformed module query.
type SyntaxError struct {
	Query   string
	Message string
	cause   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid module query %q: %s", e.Query, e.Message)
}

// Unwrap returns ErrInvalidQuery and, where present, the specific cause.
func (e *SyntaxError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrInvalidQuery, e.cause}
	}
	return []error{ErrInvalidQuery}
}

func syntaxErrorf(query, format string, args ...any) *SyntaxError {
	return &SyntaxError{Query: query, Message: fmt.Sprintf(format, args...)}
}
