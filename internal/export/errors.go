package export

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for a format name that is not known.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrFormatUnavailable is returned for a known format whose writer was
	// not compiled into this binary.
	ErrFormatUnavailable = errors.New("export format not available in this build")
)

// ExportError reports a failed export.
type ExportError struct {
	Format string
	Path   string
	Reason error
}

// Error implements the error interface
func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s export failed: %v", e.Format, e.Reason)
	}
	return fmt.Sprintf("%s export to %s failed: %v", e.Format, e.Path, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Reason
}
