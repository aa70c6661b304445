package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"blogful/internal/domain/entity"
	artUC "blogful/internal/usecase/article"
	catUC "blogful/internal/usecase/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── スタブ実装 ───────── */

type stubVideos struct{ gotDays int }

func (s *stubVideos) MostPopular(_ context.Context, days int) ([]entity.VideoViewCount, error) {
	s.gotDays = days
	return []entity.VideoViewCount{{VideoName: "Cats", Region: "Asia", Views: 3}}, nil
}

type stubProducts struct{}

func (stubProducts) SearchByName(context.Context, string) ([]entity.ProductSummary, error) {
	return nil, nil
}
func (stubProducts) FindByName(context.Context, string) (*entity.ProductSummary, error) {
	return nil, nil
}
func (stubProducts) ListPage(context.Context, int, int) ([]entity.ProductSummary, error) {
	return nil, nil
}
func (stubProducts) ListWithImages(context.Context) ([]entity.ProductWithImage, error) {
	return nil, nil
}

/* ───────── テスト ───────── */

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-name", "popular-videos", "-days", "30"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{name: "popular-videos", page: 1, days: 30}, o)

	_, err = parseFlags([]string{"-name", "weather"}, io.Discard)
	assert.ErrorContains(t, err, "unknown query")

	_, err = parseFlags([]string{"-days", "x"}, io.Discard)
	assert.Error(t, err)
}

func TestExecute_PrintsJSON(t *testing.T) {
	videos := &stubVideos{}
	cat := &catUC.Service{Videos: videos}

	var out bytes.Buffer
	err := execute(context.Background(), options{name: "popular-videos", days: 14}, cat, artUC.Service{}, &out)
	require.NoError(t, err)
	assert.Equal(t, 14, videos.gotDays)

	var got []entity.VideoViewCount
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []entity.VideoViewCount{{VideoName: "Cats", Region: "Asia", Views: 3}}, got)
}

func TestExecute_Errors(t *testing.T) {
	cat := &catUC.Service{Products: stubProducts{}}

	err := execute(context.Background(), options{name: "find-product", term: "ghost"}, cat, artUC.Service{}, io.Discard)
	assert.True(t, errors.Is(err, entity.ErrNotFound))

	err = execute(context.Background(), options{name: "products-page", page: 0}, cat, artUC.Service{}, io.Discard)
	assert.ErrorIs(t, err, catUC.ErrInvalidPage)
}

func TestQueryNames_Sorted(t *testing.T) {
	names := queryNames()
	assert.Len(t, names, len(queries))
	assert.Equal(t, "category-totals", names[0])
}
