// Package pagination holds the offset arithmetic and page parsing shared by
// the paged catalog listings.
package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidPage is returned for page numbers below 1 or non-numeric input.
var ErrInvalidPage = errors.New("page must be a positive integer")

// Page sizes used by the catalog listings.
const (
	ProductPageSize  = 10
	ShoppingPageSize = 6
)

// CalculateOffset returns the OFFSET for a 1-based page: size * (page - 1).
func CalculateOffset(page, size int) (int, error) {
	if page < 1 {
		return 0, ErrInvalidPage
	}
	return size * (page - 1), nil
}

// ParsePage reads the "page" query parameter. A missing parameter means page 1.
func ParsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// Page wraps one slice of a paged listing.
type Page[T any] struct {
	Data     []T `json:"data"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// NewPage builds a Page, normalising a nil slice to an empty one.
func NewPage[T any](data []T, page, size int) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Page: page, PageSize: size}
}
