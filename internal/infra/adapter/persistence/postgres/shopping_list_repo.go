package postgres

import (
	"context"
	"time"

	"blogful/internal/domain/entity"
	"blogful/internal/repository"
)

const shoppingListTable = "shopping_list"

type ShoppingListRepo struct {
	db DBTX
}

func NewShoppingListRepo(db DBTX) repository.ShoppingListRepository {
	return &ShoppingListRepo{db: db}
}

func (repo *ShoppingListRepo) SearchByName(ctx context.Context, term string) (_ []entity.ShoppingItem, err error) {
	defer observe("shopping_list.search", time.Now(), &err)

	query, args := newSelect(shoppingListTable, "name", "price", "category").
		WhereILike("name", term).
		OrderBy("id").
		Build()
	out := make([]entity.ShoppingItem, 0)
	if err := selectAll(ctx, repo.db, &out, "SearchByName", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (repo *ShoppingListRepo) ListPage(ctx context.Context, offset, limit int) (_ []entity.ShoppingItemName, err error) {
	defer observe("shopping_list.list_page", time.Now(), &err)

	query, args := newSelect(shoppingListTable, "name").
		OrderBy("id").
		Limit(limit).
		Offset(offset).
		Build()
	out := make([]entity.ShoppingItemName, 0, limit)
	if err := selectAll(ctx, repo.db, &out, "ListPage", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (repo *ShoppingListRepo) AddedWithin(ctx context.Context, days int) (_ []entity.ShoppingItemAdded, err error) {
	defer observe("shopping_list.added_within", time.Now(), &err)

	query, args := newSelect(shoppingListTable, "name", "date_added").
		WhereWithinDays("date_added", days).
		OrderBy("date_added DESC", "id").
		Build()
	out := make([]entity.ShoppingItemAdded, 0)
	if err := selectAll(ctx, repo.db, &out, "AddedWithin", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (repo *ShoppingListRepo) TotalCostPerCategory(ctx context.Context) (_ []entity.CategoryTotal, err error) {
	defer observe("shopping_list.total_per_category", time.Now(), &err)

	query, args := newSelect(shoppingListTable, "category", "SUM(price) AS total").
		GroupBy("category").
		OrderBy("category").
		Build()
	out := make([]entity.CategoryTotal, 0)
	if err := selectAll(ctx, repo.db, &out, "TotalCostPerCategory", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}
