package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"blogful/internal/domain/entity"
	"blogful/internal/repository"
)

const productTable = "amazong_products"

var productColumns = []string{"product_id", "name", "price", "category"}

type ProductRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) repository.ProductRepository {
	return &ProductRepo{db: db}
}

func (repo *ProductRepo) SearchByName(ctx context.Context, term string) (_ []entity.ProductSummary, err error) {
	defer observe("products.search", time.Now(), &err)

	query, args := newSelect(productTable, productColumns...).
		WhereILike("name", term).
		OrderBy("product_id").
		Build()
	out := make([]entity.ProductSummary, 0)
	if err := selectAll(ctx, repo.db, &out, "SearchByName", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (repo *ProductRepo) FindByName(ctx context.Context, name string) (_ *entity.ProductSummary, err error) {
	defer observe("products.find_by_name", time.Now(), &err)

	query, args := newSelect(productTable, productColumns...).
		WhereEq("name", name).
		OrderBy("product_id").
		Limit(1).
		Build()
	out := make([]entity.ProductSummary, 0, 1)
	if err := selectAll(ctx, repo.db, &out, "FindByName", query, args...); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (repo *ProductRepo) ListPage(ctx context.Context, offset, limit int) (_ []entity.ProductSummary, err error) {
	defer observe("products.list_page", time.Now(), &err)

	query, args := newSelect(productTable, productColumns...).
		OrderBy("product_id").
		Limit(limit).
		Offset(offset).
		Build()
	out := make([]entity.ProductSummary, 0, limit)
	if err := selectAll(ctx, repo.db, &out, "ListPage", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (repo *ProductRepo) ListWithImages(ctx context.Context) (_ []entity.ProductWithImage, err error) {
	defer observe("products.with_images", time.Now(), &err)

	query, args := newSelect(productTable, "product_id", "name", "price", "category", "image").
		WhereNotNull("image").
		OrderBy("product_id").
		Build()
	out := make([]entity.ProductWithImage, 0)
	if err := selectAll(ctx, repo.db, &out, "ListWithImages", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// selectAll runs query and maps every row into dest by db tag.
// dest must point to a slice.
func selectAll(ctx context.Context, db DBTX, dest interface{}, op, query string, args ...interface{}) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return translateError(op, err)
	}
	defer func() { _ = rows.Close() }()

	if err := sqlx.StructScan(rows, dest); err != nil {
		return translateError(op, err)
	}
	return nil
}
