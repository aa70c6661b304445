package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"blogful/internal/common/pagination"
	"blogful/internal/domain/entity"
	"blogful/internal/handler/http/request"
	"blogful/internal/handler/http/respond"
	catUC "blogful/internal/usecase/catalog"
)

type termQuery struct {
	Term string `query:"q" validate:"required,max=200"`
}

type nameQuery struct {
	Name string `query:"name" validate:"required,max=200"`
}

type daysQuery struct {
	Days *int `query:"days" validate:"required,gte=0,lte=36500"`
}

func parseTerm(r *http.Request) (string, error) {
	q := termQuery{Term: r.URL.Query().Get("q")}
	if err := request.Validate(q); err != nil {
		return "", err
	}
	return q.Term, nil
}

func parseName(r *http.Request) (string, error) {
	q := nameQuery{Name: r.URL.Query().Get("name")}
	if err := request.Validate(q); err != nil {
		return "", err
	}
	return q.Name, nil
}

func parseDays(r *http.Request) (int, error) {
	var q daysQuery
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: days must be an integer", entity.ErrInvalidInput)
		}
		q.Days = &n
	}
	if err := request.Validate(q); err != nil {
		return 0, err
	}
	return *q.Days, nil
}

// writeError answers bad page and day windows with 400 and defers the rest
// to respond.FromError.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, pagination.ErrInvalidPage) || errors.Is(err, catUC.ErrInvalidDays) {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	respond.FromError(w, r, err)
}
