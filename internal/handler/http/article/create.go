package article

import (
	"net/http"
	"strconv"

	"blogful/internal/handler/http/request"
	"blogful/internal/handler/http/respond"
	artUC "blogful/internal/usecase/article"
)

type CreateHandler struct{ Svc artUC.Service }

// ServeHTTP creates an article
// @Summary      Create article
// @Description  Inserts an article and returns it with its assigned id. A missing title is rejected by storage as a not-null violation.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body WriteRequest true "Article fields"
// @Success      201 {object} DTO
// @Failure      400 {object} respond.ErrorBody
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req WriteRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}

	a, err := h.Svc.Insert(r.Context(), req.Fields())
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	w.Header().Set("Location", "/articles/"+strconv.FormatInt(a.ID, 10))
	respond.JSON(w, http.StatusCreated, toDTO(a))
}
