package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-applefile/internal/decoder"
)

// OutputTarget describes where decoded files are written
type OutputTarget struct {
	Path      string
	Directory bool
}

// Validate ensures the output target is usable
func (ot *OutputTarget) Validate() error {
	if ot.Path == "" {
		return errors.New("output path is required")
	}
	return nil
}

// String returns a string representation of the output target
func (ot *OutputTarget) String() string {
	if ot.Directory {
		return "Directory: " + ot.Path
	}
	return "File: " + ot.Path
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeContainerAccess  = "CONTAINER_ACCESS"
	ErrCodeDestinationWrite = "DESTINATION_WRITE"
	ErrCodeResourceFork     = "RESOURCE_FORK"
	ErrCodeMetadataWrite    = "METADATA_WRITE"
	ErrCodeCancelled        = "CANCELLED"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ClassifyDecodeError maps decoder failures onto application error codes
func ClassifyDecodeError(message string, err error) *CommonError {
	switch {
	case errors.Is(err, decoder.ErrResourceForkOpen):
		return NewError(ErrCodeResourceFork, message, err)
	case errors.Is(err, decoder.ErrDestinationWrite):
		return NewError(ErrCodeDestinationWrite, message, err)
	case errors.Is(err, decoder.ErrMetadataWrite):
		return NewError(ErrCodeMetadataWrite, message, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewError(ErrCodeCancelled, message, err)
	default:
		return NewError(ErrCodeContainerAccess, message, err)
	}
}
