package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/config"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/ir"
	"github.com/ivbsa-designe/biblioteca-ceprereso/internal/render"
)

// Error codes for CLI output.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeNotFound = "E005" // Record or file not found

	// Render errors (E2xx)
	ErrCodeInputIncomplete  = "E201" // Record missing required fields (--strict)
	ErrCodeFontUnavailable  = "E202" // Font family or weight unavailable
	ErrCodeSinkUnavailable  = "E203" // Destination not writable
	ErrCodeSerialization    = "E204" // PDF encoding failed
	ErrCodeBatchIncomplete  = "E205" // Some batch jobs failed
	ErrCodeInvalidArguments = "E206" // Conflicting or missing flags

	// Setup errors (E3xx)
	ErrCodeConfigInvalid = "E301" // Config file unreadable or off-schema
	ErrCodeManifest      = "E302" // Batch manifest unreadable or invalid
	ErrCodeCatalogue     = "E303" // Catalogue could not be opened
)

// classify maps an error to its CLI error code and exit code.
func classify(err error) (string, int) {
	var inputErr *ir.InputError
	switch {
	case errors.As(err, &inputErr):
		return ErrCodeInputIncomplete, ExitFailure
	case render.IsFontUnavailable(err):
		return ErrCodeFontUnavailable, ExitFailure
	case render.IsSinkUnavailable(err):
		return ErrCodeSinkUnavailable, ExitCommandError
	case render.IsSerializationFailure(err):
		return ErrCodeSerialization, ExitFailure
	case config.IsError(err):
		return ErrCodeConfigInvalid, ExitCommandError
	case errors.Is(err, sql.ErrNoRows):
		return ErrCodeNotFound, ExitCommandError
	default:
		return ErrCodeGeneric, ExitFailure
	}
}

// fail reports err through the formatter and returns the matching ExitError.
func fail(f *OutputFormatter, message string, err error) error {
	code, exit := classify(err)
	return failWith(f, code, exit, message, err)
}

func failWith(f *OutputFormatter, code string, exit int, message string, err error) error {
	text := message
	if err != nil {
		text = fmt.Sprintf("%s: %v", message, err)
	}
	_ = f.Error(code, text, nil)
	return WrapExitError(exit, fmt.Sprintf("%s: %s", code, message), err)
}
