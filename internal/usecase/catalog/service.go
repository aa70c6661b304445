package catalog

import (
	"context"
	"fmt"

	"blogful/internal/common/pagination"
	"blogful/internal/domain/entity"
	"blogful/internal/observability/metrics"
	"blogful/internal/observability/tracing"
	"blogful/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// Service exposes the listing queries. Every method is a pure read and is
// safe to call concurrently.
type Service struct {
	Products repository.ProductRepository
	Shopping repository.ShoppingListRepository
	Videos   repository.VideoViewRepository
}

// run wraps one query with a span and the catalog metrics.
func run[T any](ctx context.Context, name string, q func(context.Context) ([]T, error), attrs ...attribute.KeyValue) (_ []T, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog."+name, attrs...)
	defer func() { tracing.EndSpan(span, err) }()

	rows, err := q(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if rows == nil {
		rows = []T{}
	}
	metrics.RecordCatalogQuery(name, len(rows))
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}

// SearchProducts returns products whose name contains term, case-insensitively.
func (s *Service) SearchProducts(ctx context.Context, term string) ([]entity.ProductSummary, error) {
	return run(ctx, "search_products", func(ctx context.Context) ([]entity.ProductSummary, error) {
		return s.Products.SearchByName(ctx, term)
	}, attribute.String("term", term))
}

// FindProductByName returns the first product named exactly name, or nil.
func (s *Service) FindProductByName(ctx context.Context, name string) (_ *entity.ProductSummary, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.find_product_by_name", attribute.String("name", name))
	defer func() { tracing.EndSpan(span, err) }()

	p, err := s.Products.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find_product_by_name: %w", err)
	}
	n := 0
	if p != nil {
		n = 1
	}
	metrics.RecordCatalogQuery("find_product_by_name", n)
	return p, nil
}

// ListProductsPage returns page (1-based) of products, ProductPageSize per page.
func (s *Service) ListProductsPage(ctx context.Context, page int) ([]entity.ProductSummary, error) {
	offset, err := pagination.CalculateOffset(page, pagination.ProductPageSize)
	if err != nil {
		return nil, err
	}
	return run(ctx, "list_products_page", func(ctx context.Context) ([]entity.ProductSummary, error) {
		return s.Products.ListPage(ctx, offset, pagination.ProductPageSize)
	}, attribute.Int("page", page))
}

// ListProductsWithImages returns products that have an image.
func (s *Service) ListProductsWithImages(ctx context.Context) ([]entity.ProductWithImage, error) {
	return run(ctx, "list_products_with_images", s.Products.ListWithImages)
}

// SearchShoppingItems returns shopping list items whose name contains term.
func (s *Service) SearchShoppingItems(ctx context.Context, term string) ([]entity.ShoppingItem, error) {
	return run(ctx, "search_shopping_items", func(ctx context.Context) ([]entity.ShoppingItem, error) {
		return s.Shopping.SearchByName(ctx, term)
	}, attribute.String("term", term))
}

// ListShoppingItemsPage returns page (1-based) of item names, ShoppingPageSize per page.
func (s *Service) ListShoppingItemsPage(ctx context.Context, page int) ([]entity.ShoppingItemName, error) {
	offset, err := pagination.CalculateOffset(page, pagination.ShoppingPageSize)
	if err != nil {
		return nil, err
	}
	return run(ctx, "list_shopping_items_page", func(ctx context.Context) ([]entity.ShoppingItemName, error) {
		return s.Shopping.ListPage(ctx, offset, pagination.ShoppingPageSize)
	}, attribute.Int("page", page))
}

// ShoppingItemsAddedAfter returns items added within the last days days.
func (s *Service) ShoppingItemsAddedAfter(ctx context.Context, days int) ([]entity.ShoppingItemAdded, error) {
	if days < 0 {
		return nil, ErrInvalidDays
	}
	return run(ctx, "shopping_items_added_after", func(ctx context.Context) ([]entity.ShoppingItemAdded, error) {
		return s.Shopping.AddedWithin(ctx, days)
	}, attribute.Int("days", days))
}

// TotalCostPerCategory sums shopping list prices per category.
func (s *Service) TotalCostPerCategory(ctx context.Context) ([]entity.CategoryTotal, error) {
	return run(ctx, "total_cost_per_category", s.Shopping.TotalCostPerCategory)
}

// MostPopularVideos counts views per video and region within the last days
// days, ordered by region then descending views.
func (s *Service) MostPopularVideos(ctx context.Context, days int) ([]entity.VideoViewCount, error) {
	if days < 0 {
		return nil, ErrInvalidDays
	}
	return run(ctx, "most_popular_videos", func(ctx context.Context) ([]entity.VideoViewCount, error) {
		return s.Videos.MostPopular(ctx, days)
	}, attribute.Int("days", days))
}
