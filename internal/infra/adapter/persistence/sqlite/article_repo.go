// Package sqlite provides SQLite implementations of repository interfaces.
// Timestamps are stored as unix milliseconds in INTEGER columns.
package sqlite

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

// DBTX is the storage handle the repository runs its statements on.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Schema is the blogful_articles table layout this repository expects.
const Schema = `
CREATE TABLE IF NOT EXISTS blogful_articles (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT    NOT NULL,
	content        TEXT,
	date_published INTEGER NOT NULL
)`

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct{ db DBTX }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db DBTX) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// arg returns the field's value, or nil so the driver binds NULL.
func arg(f entity.Field[string]) interface{} {
	if f.Value == nil {
		return nil
	}
	return *f.Value
}

func millisArg(f entity.Field[time.Time]) interface{} {
	if f.Value == nil {
		return nil
	}
	return toMillis(*f.Value)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		article entity.Article
		content sql.NullString
		millis  int64
	)
	if err := row.Scan(&article.ID, &article.Title, &content, &millis); err != nil {
		return nil, err
	}
	if content.Valid {
		article.Content = &content.String
	}
	article.DatePublished = fromMillis(millis)
	return &article, nil
}

// List retrieves all articles ordered by id.
func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	start := time.Now()
	const query = `
SELECT id, title, content, date_published
FROM blogful_articles
ORDER BY id
`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		metrics.RecordDBOperation("articles.list", time.Since(start), err)
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 16)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, article)
	}

	err = rows.Err()
	metrics.RecordDBOperation("articles.list", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}

	return articles, nil
}

// Get retrieves an article by ID. Returns (nil, nil) if it does not exist.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	start := time.Now()
	const query = `
SELECT id, title, content, date_published
FROM blogful_articles
WHERE id = ?
LIMIT 1
`

	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBOperation("articles.get", time.Since(start), nil)
		return nil, nil
	}
	metrics.RecordDBOperation("articles.get", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

// Create inserts an article and returns the stored row.
func (repo *ArticleRepo) Create(ctx context.Context, fields entity.ArticleFields) (*entity.Article, error) {
	start := time.Now()
	const query = `
INSERT INTO blogful_articles (title, content, date_published)
VALUES (?, ?, ?)
RETURNING id, title, content, date_published
`

	article, err := scanArticle(repo.db.QueryRowContext(ctx, query,
		arg(fields.Title), arg(fields.Content), millisArg(fields.DatePublished)))
	metrics.RecordDBOperation("articles.create", time.Since(start), err)
	if err != nil {
		return nil, translateError("Create", err)
	}
	return article, nil
}

// Update applies the supplied fields and returns the number of rows changed.
func (repo *ArticleRepo) Update(ctx context.Context, id int64, fields entity.ArticleFields) (int64, error) {
	start := time.Now()

	var (
		sets []string
		args []interface{}
	)
	set := func(col string, null bool, v interface{}) {
		if null {
			sets = append(sets, col+" = NULL")
			return
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if fields.Title.Set {
		set("title", fields.Title.IsNull(), arg(fields.Title))
	}
	if fields.Content.Set {
		set("content", fields.Content.IsNull(), arg(fields.Content))
	}
	if fields.DatePublished.Set {
		set("date_published", fields.DatePublished.IsNull(), millisArg(fields.DatePublished))
	}
	if len(sets) == 0 {
		return 0, nil
	}
	args = append(args, id)

	query := "UPDATE blogful_articles SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := repo.db.ExecContext(ctx, query, args...)
	metrics.RecordDBOperation("articles.update", time.Since(start), err)
	if err != nil {
		return 0, translateError("Update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Update: RowsAffected: %w", err)
	}
	return n, nil
}

// Delete removes an article and returns the number of rows removed.
func (repo *ArticleRepo) Delete(ctx context.Context, id int64) (int64, error) {
	start := time.Now()
	const query = `DELETE FROM blogful_articles WHERE id = ?`

	res, err := repo.db.ExecContext(ctx, query, id)
	metrics.RecordDBOperation("articles.delete", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("Delete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	return n, nil
}
