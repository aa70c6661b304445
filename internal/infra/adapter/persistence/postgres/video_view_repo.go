package postgres

import (
	"context"
	"time"

	"blogful/internal/domain/entity"
	"blogful/internal/repository"
)

type VideoViewRepo struct {
	db DBTX
}

func NewVideoViewRepo(db DBTX) repository.VideoViewRepository {
	return &VideoViewRepo{db: db}
}

func (repo *VideoViewRepo) MostPopular(ctx context.Context, days int) (_ []entity.VideoViewCount, err error) {
	defer observe("video_views.most_popular", time.Now(), &err)

	query, args := newSelect("whopipe_video_views", "video_name", "region", "COUNT(date_viewed) AS views").
		WhereWithinDays("date_viewed", days).
		GroupBy("video_name", "region").
		OrderBy("region ASC", "views DESC").
		Build()
	out := make([]entity.VideoViewCount, 0)
	if err := selectAll(ctx, repo.db, &out, "MostPopular", query, args...); err != nil {
		return nil, err
	}
	return out, nil
}
