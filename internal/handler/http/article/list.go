package article

import (
	"net/http"

	"blogful/internal/handler/http/respond"
	artUC "blogful/internal/usecase/article"
)

type ListHandler struct{ Svc artUC.Service }

// ServeHTTP lists articles
// @Summary      List articles
// @Description  Returns every article ordered by id.
// @Tags         articles
// @Produce      json
// @Success      200 {array}  DTO
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.GetAll(r.Context())
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	out := make([]DTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, out)
}
