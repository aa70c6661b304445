// Package catalog provides the read-only HTTP listings over products, the
// shopping list and video views.
package catalog

import (
	"net/http"

	catUC "blogful/internal/usecase/catalog"
)

// Register mounts the catalog routes on mux.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET /products", ProductsPageHandler{Svc: svc})
	mux.Handle("GET /products/search", ProductSearchHandler{Svc: svc})
	mux.Handle("GET /products/lookup", ProductLookupHandler{Svc: svc})
	mux.Handle("GET /products/with-images", ProductsWithImagesHandler{Svc: svc})

	mux.Handle("GET /shopping-list", ShoppingPageHandler{Svc: svc})
	mux.Handle("GET /shopping-list/search", ShoppingSearchHandler{Svc: svc})
	mux.Handle("GET /shopping-list/recent", ShoppingRecentHandler{Svc: svc})
	mux.Handle("GET /shopping-list/totals", CategoryTotalsHandler{Svc: svc})

	mux.Handle("GET /videos/popular", PopularVideosHandler{Svc: svc})
}
