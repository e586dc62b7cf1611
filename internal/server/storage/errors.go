package storage

import (
	"fmt"

	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

// Validation reasons returned to clients verbatim.
const (
	ReasonFilenameRequired = "Filename is required"
	ReasonFilenameTooLong  = "Filename too long (max 255 characters)"
	ReasonNotPDF           = "Only PDF files are allowed"
)

// ValidationError rejects a filename before any signing happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

// UpstreamError wraps a failed presign call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("presign upload url: %v", e.Err)
}

func (e *UpstreamError) Unwrap() []error { return []error{common.ErrUpstream, e.Err} }
