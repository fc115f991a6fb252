package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Row error codes
const (
	ErrCodeRequiredField = "REQUIRED_FIELD"
	ErrCodeInvalidType   = "INVALID_TYPE"
	ErrCodeInvalidRange  = "INVALID_RANGE"
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	ErrCodeMalformedRow  = "MALFORMED_ROW"
)

var (
	// ErrEmptyFile is returned when the CSV has no bytes at all
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned for content that is not UTF-8
	ErrInvalidEncoding = errors.New("CSV file is not valid UTF-8")

	// ErrMissingHeader is returned when the CSV has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrNoDataRows is returned when only a header is present
	ErrNoDataRows = errors.New("CSV file contains no data rows")
)

// RowError is a problem with one cell or line of the CSV
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection gathers row errors up to a limit while counting all of them
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection keeps at most maxErrors errors (100 when <= 0)
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{maxErrors: maxErrors}
}

// Add records err
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// Errors returns the kept errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// HasErrors reports whether anything was added
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// Err returns nil, or a *ValidationError holding the collected errors
func (ec *ErrorCollection) Err() error {
	if !ec.HasErrors() {
		return nil
	}
	return &ValidationError{Errors: ec.errors, Total: ec.totalCount}
}

// ValidationError reports every invalid row of a file at once
type ValidationError struct {
	Errors []RowError
	Total  int
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", e.Total)
	if e.Total > len(e.Errors) {
		fmt.Fprintf(&sb, " (showing first %d)", len(e.Errors))
	}
	sb.WriteString(":")
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
