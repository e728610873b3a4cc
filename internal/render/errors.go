package render

import (
	"errors"
	"fmt"
)

// DocumentError represents a failed render. Every failure is terminal for
// the render call; nothing is retried and no partial file is left behind.
type DocumentError struct {
	// Code identifies the error category.
	Code DocumentErrorCode

	// Message is a human-readable description.
	Message string

	// Path is the destination file, when rendering to a file.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// DocumentErrorCode categorizes render failures.
type DocumentErrorCode string

const (
	// ErrCodeFontUnavailable indicates a font family or weight the backend
	// cannot resolve.
	ErrCodeFontUnavailable DocumentErrorCode = "FONT_UNAVAILABLE"

	// ErrCodeSinkUnavailable indicates the destination cannot be created or
	// written (permissions, missing directory, disk full).
	ErrCodeSinkUnavailable DocumentErrorCode = "SINK_UNAVAILABLE"

	// ErrCodeSerializationFailure indicates the document could not be
	// encoded, including instructions that fall outside the page.
	ErrCodeSerializationFailure DocumentErrorCode = "SERIALIZATION_FAILURE"
)

// Error implements the error interface.
func (e *DocumentError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path=%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

func newError(code DocumentErrorCode, err error, format string, args ...any) *DocumentError {
	return &DocumentError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func hasCode(err error, code DocumentErrorCode) bool {
	var de *DocumentError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsFontUnavailable returns true if err is a font resolution failure.
// Uses errors.As to handle wrapped errors.
func IsFontUnavailable(err error) bool {
	return hasCode(err, ErrCodeFontUnavailable)
}

// IsSinkUnavailable returns true if err is a destination failure.
func IsSinkUnavailable(err error) bool {
	return hasCode(err, ErrCodeSinkUnavailable)
}

// IsSerializationFailure returns true if err is an encoding failure.
func IsSerializationFailure(err error) bool {
	return hasCode(err, ErrCodeSerializationFailure)
}
