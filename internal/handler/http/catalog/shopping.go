package catalog

import (
	"net/http"

	"blogful/internal/common/pagination"
	"blogful/internal/handler/http/respond"
	catUC "blogful/internal/usecase/catalog"
)

type ShoppingPageHandler struct{ Svc *catUC.Service }

// ServeHTTP lists one page of shopping list item names
// @Summary      List shopping list page
// @Description  Returns six item names per page.
// @Tags         shopping-list
// @Produce      json
// @Param        page query int false "1-based page number" default(1)
// @Success      200 {object} ShoppingPage
// @Failure      400 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /shopping-list [get]
func (h ShoppingPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pagination.RecordRequest("shopping_list", page)

	rows, err := h.Svc.ListShoppingItemsPage(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, pagination.NewPage(rows, page, pagination.ShoppingPageSize))
}

type ShoppingSearchHandler struct{ Svc *catUC.Service }

// ServeHTTP searches shopping list items by name
// @Summary      Search shopping list
// @Tags         shopping-list
// @Produce      json
// @Param        q query string true "Search term"
// @Success      200 {array} entity.ShoppingItem
// @Failure      400 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /shopping-list/search [get]
func (h ShoppingSearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	term, err := parseTerm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.Svc.SearchShoppingItems(r.Context(), term)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}

type ShoppingRecentHandler struct{ Svc *catUC.Service }

// ServeHTTP lists items added within the last days
// @Summary      Recently added items
// @Tags         shopping-list
// @Produce      json
// @Param        days query int true "Window in days" minimum(0)
// @Success      200 {array} entity.ShoppingItemAdded
// @Failure      400 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /shopping-list/recent [get]
func (h ShoppingRecentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.Svc.ShoppingItemsAddedAfter(r.Context(), days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}

type CategoryTotalsHandler struct{ Svc *catUC.Service }

// ServeHTTP sums prices per category
// @Summary      Total cost per category
// @Tags         shopping-list
// @Produce      json
// @Success      200 {array} entity.CategoryTotal
// @Failure      500 {object} respond.ErrorBody
// @Router       /shopping-list/totals [get]
func (h CategoryTotalsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.TotalCostPerCategory(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}
