// Package errs defines the error taxonomy shared across the extraction
// pipeline. Structural errors carry enough context (blob kind, field path)
// to tell an upstream format change apart from a transport failure.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBlobMissing indicates that a page does not embed the requested data
	// block. This is recoverable: the feature is simply absent on that page.
	ErrBlobMissing = errors.New("embedded data block not found")
	// ErrVideoUnavailable indicates that the requested video cannot be accessed.
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrPrivate indicates that the video is private.
	ErrPrivate = errors.New("video is private")
	// ErrAgeRestricted indicates that the video has an age restriction.
	ErrAgeRestricted = errors.New("age restricted")
	// ErrGeoBlocked indicates the video is not available in the current region.
	ErrGeoBlocked = errors.New("geo blocked")
	// ErrRateLimited indicates throttling or rate limiting by the remote service.
	ErrRateLimited = errors.New("rate limited")
)

// BlobMalformedError reports an embedded data block whose bracket nesting
// never balanced before the end of the document.
type BlobMalformedError struct {
	Kind   string
	Offset int
}

func (e *BlobMalformedError) Error() string {
	return fmt.Sprintf("malformed %s blob: nesting unbalanced from offset %d", e.Kind, e.Offset)
}

// SchemaViolationError reports a field required by every known schema variant
// that is absent or cannot be coerced to the expected type.
type SchemaViolationError struct {
	Kind string
	Path string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation in %s blob: required field %q absent or uncoercible", e.Kind, e.Path)
}

// IncompleteEntityError reports an entity whose mandatory fields were absent
// after normalization.
type IncompleteEntityError struct {
	Entity  string
	Missing []string
}

func (e *IncompleteEntityError) Error() string {
	return fmt.Sprintf("incomplete %s: missing %s", e.Entity, strings.Join(e.Missing, ", "))
}

// TransportError wraps a failure of the HTTP collaborator. The extraction
// core propagates these untouched; retry policy lives with the caller.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transport: %s: status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRecoverable reports whether the error only means a feature is absent on
// the page and extraction of other entities may proceed.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrBlobMissing)
}
