package body

import (
	"errors"
	"fmt"
)

// Upload error types
var (
	ErrTempFileCreate = errors.New("cannot create temporary upload file")
	ErrTempFileWrite  = errors.New("cannot write temporary upload file")
)

// UploadError reports a failed attempt to materialize one uploaded part on
// disk. It is the only error Parse returns: everything else a client can get
// wrong degrades to a defined fallback instead.
type UploadError struct {
	Field    string // Form field name of the part
	Filename string // Client-declared filename
	Err      error  // Underlying error
}

func (e *UploadError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("upload for field '%s' (file '%s') failed: %v", e.Field, e.Filename, e.Err)
	}
	return fmt.Sprintf("upload for field '%s' failed: %v", e.Field, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// NewUploadError creates a new UploadError
func NewUploadError(field, filename string, err error) *UploadError {
	return &UploadError{
		Field:    field,
		Filename: filename,
		Err:      err,
	}
}

// IsUploadError returns true if the error came from materializing an upload
func IsUploadError(err error) bool {
	var uploadErr *UploadError
	return errors.As(err, &uploadErr)
}
