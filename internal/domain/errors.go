package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeExtraction     = "EXTRACTION_ERROR"
	ErrCodeEmbedding      = "EMBEDDING_ERROR"
	ErrCodeStorage        = "STORAGE_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// Request-fatal errors: these abort the whole operation.
var (
	ErrNoFileUploaded    = NewDomainError(ErrCodeInvalidRequest, "No file uploaded")
	ErrEmptyDocument     = NewDomainError(ErrCodeInvalidRequest, "uploaded document is empty")
	ErrNoExtractableText = NewDomainError(ErrCodeExtraction, "failed to extract text from PDF")
)

// Not found errors
var (
	ErrConfigNotFound = NewDomainError(ErrCodeNotFound, "bot config not found")
	ErrMemoryEmpty    = NewDomainError(ErrCodeNotFound, "no conversation memory stored")
	ErrStatusNotFound = NewDomainError(ErrCodeNotFound, "bot status row not found")
)
