package article

import (
	"net/http"

	"blogful/internal/handler/http/pathutil"
	"blogful/internal/handler/http/respond"
	artUC "blogful/internal/usecase/article"
)

type GetHandler struct{ Svc artUC.Service }

// ServeHTTP fetches one article
// @Summary      Get article
// @Tags         articles
// @Produce      json
// @Param        id path int true "Article ID"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, http.StatusBadRequest, err)
		return
	}

	a, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	if a == nil {
		respond.NotFound(w)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}
