// Package article provides the HTTP handlers for /articles.
package article

import (
	"time"

	"blogful/internal/domain/entity"
	"blogful/internal/handler/http/request"
)

// DTO is the JSON form of an article.
type DTO struct {
	ID            int64     `json:"id" example:"1"`
	Title         string    `json:"title" example:"First test post!"`
	Content       *string   `json:"content" example:"Lorem ipsum dolor sit amet"`
	DatePublished time.Time `json:"date_published" example:"2029-01-22T16:28:32.615Z"`
}

// WriteRequest is the body of POST and PATCH. Absent keys are not supplied;
// an explicit null writes NULL.
type WriteRequest struct {
	Title         request.Optional[string]    `json:"title" validate:"omitempty,min=1,max=500" swaggertype:"string" example:"Test new title"`
	Content       request.Optional[string]    `json:"content" validate:"omitempty,max=100000" swaggertype:"string" example:"Test new content"`
	DatePublished request.Optional[time.Time] `json:"date_published" swaggertype:"string" format:"date-time" example:"2029-01-22T16:28:32.615Z"`
}

// Fields converts the request into the use case field set.
func (r WriteRequest) Fields() entity.ArticleFields {
	return entity.ArticleFields{
		Title:         r.Title.Field(),
		Content:       r.Content.Field(),
		DatePublished: r.DatePublished.Field(),
	}
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		DatePublished: a.DatePublished,
	}
}
