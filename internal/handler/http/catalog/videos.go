package catalog

import (
	"net/http"

	"blogful/internal/common/pagination"
	"blogful/internal/domain/entity"
	"blogful/internal/handler/http/respond"
	catUC "blogful/internal/usecase/catalog"
)

// ProductPage and ShoppingPage name the paged envelopes for the API docs.
type (
	ProductPage  = pagination.Page[entity.ProductSummary]
	ShoppingPage = pagination.Page[entity.ShoppingItemName]
)

type PopularVideosHandler struct{ Svc *catUC.Service }

// ServeHTTP counts views per video and region
// @Summary      Most popular videos
// @Description  Views within the last days, ordered by region then descending views.
// @Tags         videos
// @Produce      json
// @Param        days query int true "Window in days" minimum(0)
// @Success      200 {array} entity.VideoViewCount
// @Failure      400 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /videos/popular [get]
func (h PopularVideosHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := h.Svc.MostPopularVideos(r.Context(), days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, rows)
}
