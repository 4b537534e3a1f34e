package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a row or object does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// DataAccessError is a query, network or constraint failure in the row store.
type DataAccessError struct {
	Op         string
	Collection string
	Err        error
}

func (e *DataAccessError) Error() string {
	if e == nil {
		return "data access error"
	}
	return fmt.Sprintf("data access %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// DataAccess wraps err unless it is nil or already classified.
func DataAccess(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var dae *DataAccessError
	if errors.As(err, &dae) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &DataAccessError{Op: op, Collection: collection, Err: err}
}

// UploadError is an object storage failure.
type UploadError struct {
	Bucket string
	Path   string
	Err    error
}

func (e *UploadError) Error() string {
	if e == nil {
		return "upload error"
	}
	return fmt.Sprintf("upload %s/%s: %v", e.Bucket, e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ValidationError is a required-field or enum check on input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required returns a ValidationError for the first blank value.
// pairs alternates field name and value.
func Required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return &ValidationError{Field: pairs[i], Message: "is required"}
		}
	}
	return nil
}

// OneOf checks v against allowed values.
func OneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return &ValidationError{Field: field, Message: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

func IsUpload(err error) bool {
	var ue *UploadError
	return errors.As(err, &ue)
}
