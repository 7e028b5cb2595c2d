package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrFileNotSelected = errors.New("file not in selection")
	ErrSessionNotFound = errors.New("session not found")
	ErrNoContent       = errors.New("no pages to write")
)

// MissingInputError is returned before any I/O when a required input is absent.
type MissingInputError struct {
	Fields []string
}

func (e *MissingInputError) Error() string {
	return "missing required input: " + strings.Join(e.Fields, ", ")
}

// DocumentReadError reports a source file that could not be opened or parsed.
type DocumentReadError struct {
	Path string
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed page range. Path is set once the range is
// resolved against a selected file.
type ParseError struct {
	Path  string
	Text  string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid page range %q", e.Text)
	if e.Token != "" && e.Token != e.Text {
		msg += fmt.Sprintf(" at %q", e.Token)
	}
	if e.Path != "" {
		msg += " for " + e.Path
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidParameterError reports an operation parameter that failed validation.
type InvalidParameterError struct {
	Param   string
	Value   string
	Message string
}

func (e *InvalidParameterError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s %q", e.Param, e.Value)
}

// NoContentWarning is a degenerate success: the operation ran but produced
// zero pages, so nothing was written.
type NoContentWarning struct {
	Operation string
}

func (e *NoContentWarning) Error() string {
	return e.Operation + ": no pages selected, nothing written"
}

func (e *NoContentWarning) Unwrap() error {
	return ErrNoContent
}

// WriteError reports a failure persisting an output document.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWarning reports whether err is a degenerate success rather than a failure.
func IsWarning(err error) bool {
	return errors.Is(err, ErrNoContent)
}
