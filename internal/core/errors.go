package core

import (
	"errors"
)

var (
	// ErrMissingRegionColumn is wrapped by a ParseError when the header has
	// no column named "region".
	ErrMissingRegionColumn = errors.New(`missing required column "region"`)

	// ErrEmptyInput is wrapped by a ParseError when the input has no header row.
	ErrEmptyInput = errors.New("empty file")

	// ErrInvalidEncoding is wrapped by a ParseError when the input is not
	// valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
)

// ParseError reports input that cannot be read as a CSV with a region column.
// Err is the underlying cause: a *csv.ParseError, ErrMissingRegionColumn,
// ErrEmptyInput or ErrInvalidEncoding.
type ParseError struct {
	Line int // Line the failure was detected on; 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	return "invalid csv: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is, or wraps, a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
