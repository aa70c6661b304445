// Package pathutil parses path parameters and normalizes request paths for
// metric labels.
package pathutil

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned when a path id is not a positive integer.
var ErrInvalidID = errors.New("invalid id: must be a positive integer")

// ParseID parses a path segment such as r.PathValue("id") into a positive id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
