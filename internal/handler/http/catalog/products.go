package catalog

import (
	"net/http"

	"blogful/internal/common/pagination"
	"blogful/internal/handler/http/respond"
	catUC "blogful/internal/usecase/catalog"
)

type ProductsPageHandler struct{ Svc *catUC.Service }

// ServeHTTP lists one page of products
// @Summary      List products page
// @Description  Returns ten products per page in storage order.
// @Tags         products
// @Produce      json
// @Param        page query int false "1-based page number" default(1)
// @Success      200 {object} ProductPage
// @Failure      400 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /products [get]
func (h ProductsPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pagination.RecordRequest("products", page)

	rows, err := h.Svc.ListProductsPage(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, pagination.NewPage(rows, page, pagination.ProductPageSize))
}

type ProductSearchHandler struct{ Svc *catUC.Service }

// ServeHTTP searches products by name
// @Summary      Search products
// @Description  Case-insensitive substring match on the product name.
// @Tags         products
// @Produce      json
// @Param        q query string true "Search term"
// @Success      200 {array} entity.ProductSummary
// @Failure      400 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /products/search [get]
func (h ProductSearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	term, err := parseTerm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.Svc.SearchProducts(r.Context(), term)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}

type ProductLookupHandler struct{ Svc *catUC.Service }

// ServeHTTP finds a product by exact name
// @Summary      Find product by name
// @Tags         products
// @Produce      json
// @Param        name query string true "Exact product name"
// @Success      200 {object} entity.ProductSummary
// @Failure      400 {object} respond.ErrorBody
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /products/lookup [get]
func (h ProductLookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, err := parseName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.Svc.FindProductByName(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p == nil {
		respond.NotFound(w)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

type ProductsWithImagesHandler struct{ Svc *catUC.Service }

// ServeHTTP lists products that have an image
// @Summary      List products with images
// @Tags         products
// @Produce      json
// @Success      200 {array} entity.ProductWithImage
// @Failure      500 {object} respond.ErrorBody
// @Router       /products/with-images [get]
func (h ProductsWithImagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.ListProductsWithImages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}
