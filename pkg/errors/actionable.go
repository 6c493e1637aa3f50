// Package errors turns scan errors into actionable messages.
//
// Walk errors are reported per entry and never stop a scan, so the user
// sees them as a stream of diagnostics. This package categorises each one
// (permission, missing path, symlink loop, remote connection, ...) and
// attaches suggestions for fixing it.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	actionableErr := enricher.Enrich(err, "/restricted/dir")
//	fmt.Println(actionableErr.Error())
//	fmt.Println(errors.FormatSuggestions(actionableErr))
//
// The enricher extracts the path from the error message when none is given:
//
//	err := stdErrors.New("open /home/user/secrets: permission denied")
//	enriched := enricher.Enrich(err, "") // path is /home/user/secrets
package errors

import "strings"

// Exported constants.
const (
	CategoryConnection   ErrorCategory = "connection"
	CategoryIO           ErrorCategory = "io"
	CategoryLoop         ErrorCategory = "loop"
	CategoryNotDirectory ErrorCategory = "not_directory"
	CategoryPath         ErrorCategory = "path"
	CategoryPermission   ErrorCategory = "permission"
	CategoryUnknown      ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a
// bulleted list. Returns empty string if the error is nil, not actionable,
// or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	actionable, ok := err.(ActionableError) //nolint:errorlint // Enrich returns ActionableError unwrapped
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
}

// AffectedPath returns the path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}
