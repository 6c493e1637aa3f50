package finder

import (
	"errors"
	"fmt"
)

// InvalidRootError reports a scan root that is missing, is not a
// directory, or could not be opened at all. The scan result is empty.
type InvalidRootError struct {
	Root string
	Err  error
}

// Error implements the error interface.
func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("invalid scan root %s: %v", e.Root, e.Err)
}

// Unwrap returns the underlying error, usually a *filesystem.EntryError.
func (e *InvalidRootError) Unwrap() error {
	return e.Err
}

// IsInvalidRoot reports whether err is, or wraps, an InvalidRootError.
func IsInvalidRoot(err error) bool {
	var rootErr *InvalidRootError
	return errors.As(err, &rootErr)
}
