package error

import (
	"errors"
	"time"
)

// Storage errors raised by the persistence layer.
var (
	// ErrQueryTimeout is returned when a database round trip exceeds its deadline.
	ErrQueryTimeout = errors.New("database query timed out")

	// ErrSerializationFailure is returned when a serializable transaction must be retried.
	ErrSerializationFailure = errors.New("concurrent update detected")
)

// StorageErrorCode defines error codes for storage errors.
// Format: STO-XXYYYY where XX is category and YYYY is specific error.
type StorageErrorCode string

const (
	// Retryable errors (01XXXX)
	ErrCodeQueryTimeout         StorageErrorCode = "STO-010001"
	ErrCodeSerializationFailure StorageErrorCode = "STO-010002"
)

// DefaultRetryAfter is the back-off suggested to clients for retryable failures.
const DefaultRetryAfter = time.Second

// StorageError is a data access failure the caller may retry.
type StorageError struct {
	Code    StorageErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError with the given code and message.
func NewStorageError(code StorageErrorCode, message string, err error) *StorageError {
	return &StorageError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsRetryable reports whether err wraps a StorageError.
func IsRetryable(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}
