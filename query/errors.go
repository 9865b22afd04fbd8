package query

import (
	"errors"
	"fmt"
)

var (
	// ErrFilter is wrapped by every filter resolution or shape error.
	ErrFilter = errors.New("invalid filter")
	// ErrInvalidSearchType is returned for unknown search types.
	ErrInvalidSearchType = errors.New("invalid search type")
	// ErrInvalidReturnType is returned for unknown return types.
	ErrInvalidReturnType = errors.New("invalid return type")
)

// ParseError reports a malformed query. Position and Length locate the
// offending token in the free-text input; they are -1 and 0 for JSON input.
type ParseError struct {
	Message  string
	Position int
	Length   int
	Err      error
}

func (e *ParseError) Error() string {
	if e.Position < 0 {
		return "query: " + e.Message
	}
	return fmt.Sprintf("query: %s (at position %d)", e.Message, e.Position)
}

func (e *ParseError) Unwrap() error { return e.Err }

func errorAt(tok Token, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: tok.Position,
		Length:   max(tok.Length, 1),
	}
}

func jsonError(format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: -1,
	}
}
