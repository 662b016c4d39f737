package notation

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every *ParseError.
var ErrMalformed = errors.New("malformed notation")

// ParseError reports which record field could not be parsed.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

func parseErr(field, value, format string, args ...any) *ParseError {
	return &ParseError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
