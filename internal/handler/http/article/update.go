package article

import (
	"errors"
	"net/http"

	"blogful/internal/handler/http/pathutil"
	"blogful/internal/handler/http/request"
	"blogful/internal/handler/http/respond"
	artUC "blogful/internal/usecase/article"
)

type UpdateHandler struct{ Svc artUC.Service }

// ServeHTTP partially updates an article
// @Summary      Update article
// @Description  Overwrites only the supplied fields.
// @Tags         articles
// @Accept       json
// @Param        id      path int          true "Article ID"
// @Param        article body WriteRequest true "Fields to change"
// @Success      204
// @Failure      400 {object} respond.ErrorBody
// @Failure      404 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, http.StatusBadRequest, err)
		return
	}

	var req WriteRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}

	n, err := h.Svc.Update(r.Context(), id, req.Fields())
	switch {
	case errors.Is(err, artUC.ErrEmptyUpdate):
		respond.SafeError(w, r, http.StatusBadRequest, err)
	case err != nil:
		respond.FromError(w, r, err)
	case n == 0:
		respond.NotFound(w)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
