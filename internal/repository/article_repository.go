package repository

import (
	"context"

	"blogful/internal/domain/entity"
)

// ArticleRepository is the storage contract for blogful_articles.
// Absent rows are never errors: Get returns (nil, nil) and Update/Delete return 0.
type ArticleRepository interface {
	// List returns every article ordered by id.
	List(ctx context.Context) ([]*entity.Article, error)
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// Create inserts one row and returns it as persisted, including the assigned id.
	// Unsupplied fields are sent as NULL so storage constraints decide.
	Create(ctx context.Context, fields entity.ArticleFields) (*entity.Article, error)
	// Update applies the supplied fields to the row with the given id and
	// returns the number of rows affected.
	Update(ctx context.Context, id int64, fields entity.ArticleFields) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
