// Package article implements the CRUD use cases for blog articles.
//
// Absence is structural rather than an error: GetByID returns a nil article
// and Update/Delete report zero rows affected. Storage constraint violations
// pass through as *entity.ConstraintViolation.
package article

import "errors"

// ErrEmptyUpdate is returned by Update when no field was supplied.
var ErrEmptyUpdate = errors.New("update requires at least one field")
