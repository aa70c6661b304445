package article

import (
	"context"
	"fmt"

	"blogful/internal/domain/entity"
	"blogful/internal/observability/metrics"
	"blogful/internal/observability/tracing"
	"blogful/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// Service provides the article use cases on top of a repository.
type Service struct {
	Repo repository.ArticleRepository
}

// GetAll returns every article ordered by id. The slice is empty, not nil,
// when there are no articles.
func (s *Service) GetAll(ctx context.Context) (_ []*entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "articles.get_all")
	defer func() { tracing.EndSpan(span, err) }()

	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if articles == nil {
		articles = []*entity.Article{}
	}
	span.SetAttributes(attribute.Int("articles.count", len(articles)))
	return articles, nil
}

// Insert stores a new article and returns it as persisted.
// Required fields are enforced by storage; a missing title surfaces as a
// not-null *entity.ConstraintViolation.
func (s *Service) Insert(ctx context.Context, fields entity.ArticleFields) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "articles.insert")
	defer func() { tracing.EndSpan(span, err) }()

	art, err := s.Repo.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	metrics.RecordArticleMutation("insert", 1)
	span.SetAttributes(attribute.Int64("article.id", art.ID))
	return art, nil
}

// GetByID returns the article with id, or nil when it does not exist.
func (s *Service) GetByID(ctx context.Context, id int64) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "articles.get_by_id", attribute.Int64("article.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return art, nil
}

// Update applies the supplied fields to the article with id and returns the
// number of rows changed (0 when the article does not exist).
func (s *Service) Update(ctx context.Context, id int64, fields entity.ArticleFields) (_ int64, err error) {
	if fields.IsEmpty() {
		return 0, ErrEmptyUpdate
	}

	ctx, span := tracing.StartSpan(ctx, "articles.update", attribute.Int64("article.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	n, err := s.Repo.Update(ctx, id, fields)
	if err != nil {
		return 0, fmt.Errorf("update article: %w", err)
	}
	metrics.RecordArticleMutation("update", n)
	span.SetAttributes(attribute.Int64("rows_affected", n))
	return n, nil
}

// Delete removes the article with id and returns the number of rows removed.
func (s *Service) Delete(ctx context.Context, id int64) (_ int64, err error) {
	ctx, span := tracing.StartSpan(ctx, "articles.delete", attribute.Int64("article.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete article: %w", err)
	}
	metrics.RecordArticleMutation("delete", n)
	span.SetAttributes(attribute.Int64("rows_affected", n))
	return n, nil
}
