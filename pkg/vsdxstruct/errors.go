package vsdxstruct

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid vsdx package.
var ErrInvalidFormat = errors.New("invalid vsdx format")

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	Page      string
	Component string // "geometry", "style", "text"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in page %q (%s): %v", e.Page, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(page, component string, err error) *ExtractionError {
	return &ExtractionError{
		Page:      page,
		Component: component,
		Err:       err,
	}
}
