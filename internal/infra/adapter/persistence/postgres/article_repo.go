package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogful/internal/domain/entity"
	"blogful/internal/observability/metrics"
	"blogful/internal/repository"
)

const articleColumns = "id, title, content, date_published"

type ArticleRepo struct {
	db DBTX
}

func NewArticleRepo(db DBTX) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) List(ctx context.Context) (articles []*entity.Article, err error) {
	defer observe("articles.list", time.Now(), &err)

	const query = `
SELECT ` + articleColumns + `
FROM blogful_articles
ORDER BY id`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError("List", err)
	}
	defer func() { _ = rows.Close() }()

	articles = make([]*entity.Article, 0, 16)
	for rows.Next() {
		var article entity.Article
		if err := rows.Scan(&article.ID, &article.Title, &article.Content, &article.DatePublished); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, &article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (_ *entity.Article, err error) {
	defer observe("articles.get", time.Now(), &err)

	const query = `
SELECT ` + articleColumns + `
FROM blogful_articles
WHERE id = $1
LIMIT 1`
	var article entity.Article
	err = repo.db.QueryRowContext(ctx, query, id).
		Scan(&article.ID, &article.Title, &article.Content, &article.DatePublished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("Get", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, fields entity.ArticleFields) (_ *entity.Article, err error) {
	defer observe("articles.create", time.Now(), &err)

	const query = `
INSERT INTO blogful_articles (title, content, date_published)
VALUES ($1, $2, $3)
RETURNING ` + articleColumns
	var article entity.Article
	err = repo.db.QueryRowContext(ctx, query,
		arg(fields.Title), arg(fields.Content), arg(fields.DatePublished)).
		Scan(&article.ID, &article.Title, &article.Content, &article.DatePublished)
	if err != nil {
		return nil, translateError("Create", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) Update(ctx context.Context, id int64, fields entity.ArticleFields) (_ int64, err error) {
	defer observe("articles.update", time.Now(), &err)

	set, args := buildArticleSet(fields)
	if set == "" {
		return 0, nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE blogful_articles SET %s WHERE id = $%d", set, len(args))

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateError("Update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Update: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) (_ int64, err error) {
	defer observe("articles.delete", time.Now(), &err)

	const query = `DELETE FROM blogful_articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, translateError("Delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n, nil
}

// buildArticleSet builds the SET list for the supplied fields in column order.
// Explicit nulls become "col = NULL"; placeholders start at $1.
func buildArticleSet(fields entity.ArticleFields) (string, []interface{}) {
	var (
		parts []string
		args  []interface{}
	)
	add := func(col string, f interface{ IsNull() bool }, v interface{}) {
		if f.IsNull() {
			parts = append(parts, col+" = NULL")
			return
		}
		args = append(args, v)
		parts = append(parts, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if fields.Title.Set {
		add("title", fields.Title, arg(fields.Title))
	}
	if fields.Content.Set {
		add("content", fields.Content, arg(fields.Content))
	}
	if fields.DatePublished.Set {
		add("date_published", fields.DatePublished, arg(fields.DatePublished))
	}
	return strings.Join(parts, ", "), args
}

// arg returns the field's value, or nil so the driver sends NULL.
func arg[T any](f entity.Field[T]) interface{} {
	if f.Value == nil {
		return nil
	}
	return *f.Value
}

func observe(op string, start time.Time, err *error) {
	metrics.RecordDBOperation(op, time.Since(start), *err)
}
