// Package entity defines the core domain entities for the blog service.
// It contains the Article record, the read-only listing projections returned by
// the catalog queries, and the domain errors shared by every storage backend.
package entity

import "time"

// Article represents a blog article stored in blogful_articles.
// ID is assigned by storage and never synthesized by the service.
type Article struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	Content       *string   `db:"content"`
	DatePublished time.Time `db:"date_published"`
}

// Field is one caller-supplied column value. The zero value is "not
// supplied"; Set with a nil Value writes NULL.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Supply returns a field holding v.
func Supply[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a field that writes NULL.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// IsNull reports whether the field was supplied as NULL.
func (f Field[T]) IsNull() bool {
	return f.Set && f.Value == nil
}

// ArticleFields is the field set used for insert and partial update.
// On insert an unsupplied field is stored as NULL; on update it is left alone.
type ArticleFields struct {
	Title         Field[string]
	Content       Field[string]
	DatePublished Field[time.Time]
}

// IsEmpty reports whether no field was supplied.
func (f ArticleFields) IsEmpty() bool {
	return !f.Title.Set && !f.Content.Set && !f.DatePublished.Set
}
