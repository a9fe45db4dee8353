package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingID     = errors.New("id is required")
	ErrMissingType   = errors.New("type is required")
	ErrMissingSource = errors.New("source is required")
	ErrMissingTarget = errors.New("target is required")
	ErrInvalidID     = errors.New("identifier must not contain NUL bytes")
	ErrEmptyLabel    = errors.New("labels must not be empty strings")
	ErrTooManyLabels = errors.New("a node may carry at most 32 labels")
)

// Sentinel errors for path queries.
var (
	ErrInvalidDepth = errors.New("depth must not be negative")
	ErrDepthTooDeep = errors.New("depth exceeds the configured maximum")
	ErrInvalidBound = errors.New("bound must not be negative")
	ErrInvalidLimit = errors.New("limit must not be negative")
)

// Sentinel errors for entity lookups.
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrNoPath       = errors.New("no path found")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
