// Package catalog implements the read-only listing queries over the product,
// shopping list and video view tables.
package catalog

import (
	"errors"

	"blogful/internal/common/pagination"
)

var (
	// ErrInvalidPage is returned for page numbers below 1.
	ErrInvalidPage = pagination.ErrInvalidPage

	// ErrInvalidDays is returned for a negative day window.
	ErrInvalidDays = errors.New("days must be zero or positive")
)
