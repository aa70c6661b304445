package article

import (
	"net/http"

	"blogful/internal/handler/http/pathutil"
	"blogful/internal/handler/http/respond"
	artUC "blogful/internal/usecase/article"
)

type DeleteHandler struct{ Svc artUC.Service }

// ServeHTTP deletes an article
// @Summary      Delete article
// @Tags         articles
// @Param        id path int true "Article ID"
// @Success      204
// @Failure      400 {object} respond.ErrorBody
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, http.StatusBadRequest, err)
		return
	}

	n, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	if n == 0 {
		respond.NotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
