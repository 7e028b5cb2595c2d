package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"pdf-fusion/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeMissingInput     ErrorType = "missing_input"
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"
	ErrorTypeParse            ErrorType = "parse"
	ErrorTypeDocumentRead     ErrorType = "document_read"
	ErrorTypeNoContent        ErrorType = "no_content"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeWrite            ErrorType = "write"
	ErrorTypeInternal         ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsWarning reports whether the error describes a degenerate success
func (e *AppError) IsWarning() bool {
	return e.Type == ErrorTypeNoContent
}

// NewInvalidParameterError creates an error for a request value that could
// not be understood
func NewInvalidParameterError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeInvalidParameter,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Classify maps a domain error onto an AppError. A nil error yields nil.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var (
		missing  *domain.MissingInputError
		param    *domain.InvalidParameterError
		parse    *domain.ParseError
		read     *domain.DocumentReadError
		warning  *domain.NoContentWarning
		writeErr *domain.WriteError
	)
	switch {
	case stderrors.As(err, &missing):
		return &AppError{Type: ErrorTypeMissingInput, Message: "Please provide all required inputs", Details: err.Error(), StatusCode: http.StatusBadRequest, Cause: err}
	case stderrors.As(err, &param):
		return &AppError{Type: ErrorTypeInvalidParameter, Message: err.Error(), StatusCode: http.StatusBadRequest, Cause: err}
	case stderrors.As(err, &parse):
		return &AppError{Type: ErrorTypeParse, Message: err.Error(), StatusCode: http.StatusBadRequest, Cause: err}
	case stderrors.As(err, &read):
		return &AppError{Type: ErrorTypeDocumentRead, Message: "Could not read " + read.Path, Details: fmt.Sprint(read.Err), StatusCode: http.StatusUnprocessableEntity, Cause: err}
	case stderrors.As(err, &warning):
		return &AppError{Type: ErrorTypeNoContent, Message: err.Error(), StatusCode: http.StatusOK, Cause: err}
	case stderrors.As(err, &writeErr):
		return &AppError{Type: ErrorTypeWrite, Message: "Could not write " + writeErr.Path, Details: fmt.Sprint(writeErr.Err), StatusCode: http.StatusInternalServerError, Cause: err}
	case stderrors.Is(err, domain.ErrSessionNotFound), stderrors.Is(err, domain.ErrFileNotSelected):
		return &AppError{Type: ErrorTypeNotFound, Message: err.Error(), StatusCode: http.StatusNotFound, Cause: err}
	default:
		return NewInternalError("Internal error", err)
	}
}
