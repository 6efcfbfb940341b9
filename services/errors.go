package services

import (
	"errors"

	"github.com/kendall-kelly/table-orders-api/ledger"
)

var (
	// ErrInvalidRequest is returned when input is rejected before any write
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when a table has no active order, or the order has no matching line
	ErrNotFound = errors.New("not found")

	// ErrImagesDisabled is returned by image operations when no bucket is configured
	ErrImagesDisabled = errors.New("menu images are disabled")
)

// Error codes reported to API clients
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeConstraint     = "CONSTRAINT_VIOLATION"
	CodeImagesDisabled = "IMAGES_DISABLED"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorCode maps an error returned by this package onto a stable client-facing code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrImagesDisabled):
		return CodeImagesDisabled
	case errors.Is(err, ledger.ErrConstraintViolation):
		return CodeConstraint
	default:
		return CodeInternal
	}
}
