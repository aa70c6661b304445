package article

import (
	"net/http"

	artUC "blogful/internal/usecase/article"
)

// Register mounts the article routes on mux.
func Register(mux *http.ServeMux, svc artUC.Service) {
	mux.Handle("GET /articles", ListHandler{svc})
	mux.Handle("POST /articles", CreateHandler{svc})
	mux.Handle("GET /articles/{id}", GetHandler{svc})
	mux.Handle("PATCH /articles/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /articles/{id}", DeleteHandler{svc})
}
