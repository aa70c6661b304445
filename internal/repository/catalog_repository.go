package repository

import (
	"context"

	"blogful/internal/domain/entity"
)

// ProductRepository reads amazong_products.
type ProductRepository interface {
	SearchByName(ctx context.Context, term string) ([]entity.ProductSummary, error)
	// FindByName returns the first product with exactly this name, or nil.
	FindByName(ctx context.Context, name string) (*entity.ProductSummary, error)
	ListPage(ctx context.Context, offset, limit int) ([]entity.ProductSummary, error)
	ListWithImages(ctx context.Context) ([]entity.ProductWithImage, error)
}

// ShoppingListRepository reads shopping_list.
type ShoppingListRepository interface {
	SearchByName(ctx context.Context, term string) ([]entity.ShoppingItem, error)
	ListPage(ctx context.Context, offset, limit int) ([]entity.ShoppingItemName, error)
	// AddedWithin returns items whose date_added is later than now minus days.
	AddedWithin(ctx context.Context, days int) ([]entity.ShoppingItemAdded, error)
	TotalCostPerCategory(ctx context.Context) ([]entity.CategoryTotal, error)
}

// VideoViewRepository reads whopipe_video_views.
type VideoViewRepository interface {
	// MostPopular counts views per (video, region) within the last days,
	// ordered by region ascending then views descending.
	MostPopular(ctx context.Context, days int) ([]entity.VideoViewCount, error)
}
