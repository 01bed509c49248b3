package catalog

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrProductNotFound indicates a product lookup on a nonexistent id
	ErrProductNotFound = errors.New("product not found")

	// ErrDocumentNotFound indicates a document was not found in its collection
	ErrDocumentNotFound = errors.New("document not found")

	// ErrImageTooLarge indicates an uploaded image exceeds the size limit
	ErrImageTooLarge = errors.New("image exceeds maximum size")

	// ErrImageType indicates an uploaded image has a disallowed type
	ErrImageType = errors.New("image type not allowed")

	// ErrInvalidBoolToken indicates an unrecognized truthy/falsy form token
	ErrInvalidBoolToken = errors.New("invalid boolean token")

	// ErrUploadFailed indicates a blob upload operation failed
	ErrUploadFailed = errors.New("upload failed")
)

// DocumentError represents an error related to document store operations
type DocumentError struct {
	Collection string
	ID         string
	Op         string
	Err        error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document operation %s failed for %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations
type StorageError struct {
	Bucket string
	Key    string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s in bucket %s: %v", e.Op, e.Key, e.Bucket, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError carries field-level validation messages for a request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
