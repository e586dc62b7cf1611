package transfer

import (
	"errors"
	"fmt"
)

// Messages below are shown to the operator verbatim.
var (
	ErrAlreadyExists = errors.New("A file with this name already exists")
	ErrNetwork       = errors.New("Network error during upload")
	ErrCancelled     = errors.New("Upload cancelled")
)

// UploadFailedError is any non-2xx answer other than 412.
type UploadFailedError struct {
	Status int
}

func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("Upload failed with status %d", e.Status)
}

// NetworkError is a transport fault. Err keeps the underlying cause for logs.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return ErrNetwork.Error() }

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }
