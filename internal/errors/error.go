package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryMarkup  Category = "markup"
	CategoryStorage Category = "storage"
	CategoryScript  Category = "script"
)

// PageError is a structured error with a code, an explanation and a hint.
type PageError struct {
	// Code is a unique error identifier (e.g., "P001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *PageError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	// The registered detail is a generic explanation; only a detail set
	// at the call site says something about this occurrence.
	if e.Detail != "" && e.Detail != registry[e.Code].Detail {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		return msg + ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *PageError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PageError with the same code.
func (e *PageError) Is(target error) bool {
	t, ok := target.(*PageError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *PageError) WithSuggestion(s string) *PageError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *PageError) WithDetail(d string) *PageError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted explanation to the error.
func (e *PageError) WithDetailf(format string, args ...any) *PageError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *PageError) Wrap(err error) *PageError {
	e.Wrapped = err
	return e
}

// New creates a PageError from a registered error code.
func New(code string) *PageError {
	template, ok := registry[code]
	if !ok {
		return &PageError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &PageError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new PageError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *PageError {
	return &PageError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a PageError.
// Errors that already are a PageError are returned unchanged.
func FromError(err error, code string) *PageError {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*PageError); ok {
		return pe
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first PageError in err's chain, or "".
func Code(err error) string {
	for err != nil {
		if pe, ok := err.(*PageError); ok {
			return pe.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
