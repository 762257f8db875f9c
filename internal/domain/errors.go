package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedOutput is returned when an external script prints output that
// does not follow the expected KEY=value contract.
var ErrMalformedOutput = errors.New("malformed script output")

// NotFoundError is returned when the results directory cannot be located.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("results directory not found: %s", e.Path)
}

// ParseError wraps a failure to parse a single result document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable report %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
