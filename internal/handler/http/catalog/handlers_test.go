package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogful/internal/domain/entity"
	hcatalog "blogful/internal/handler/http/catalog"
	catUC "blogful/internal/usecase/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── スタブ実装 ───────── */

type stubProducts struct {
	rows      []entity.ProductSummary
	images    []entity.ProductWithImage
	gotTerm   string
	gotOffset int
	err       error
}

func (s *stubProducts) SearchByName(_ context.Context, term string) ([]entity.ProductSummary, error) {
	s.gotTerm = term
	return s.rows, s.err
}

func (s *stubProducts) FindByName(_ context.Context, name string) (*entity.ProductSummary, error) {
	for i := range s.rows {
		if s.rows[i].Name == name {
			return &s.rows[i], nil
		}
	}
	return nil, s.err
}

func (s *stubProducts) ListPage(_ context.Context, offset, _ int) ([]entity.ProductSummary, error) {
	s.gotOffset = offset
	return s.rows, s.err
}

func (s *stubProducts) ListWithImages(context.Context) ([]entity.ProductWithImage, error) {
	return s.images, s.err
}

type stubShopping struct {
	names     []entity.ShoppingItemName
	added     []entity.ShoppingItemAdded
	totals    []entity.CategoryTotal
	gotOffset int
	gotDays   int
}

func (s *stubShopping) SearchByName(context.Context, string) ([]entity.ShoppingItem, error) {
	return nil, nil
}

func (s *stubShopping) ListPage(_ context.Context, offset, _ int) ([]entity.ShoppingItemName, error) {
	s.gotOffset = offset
	return s.names, nil
}

func (s *stubShopping) AddedWithin(_ context.Context, days int) ([]entity.ShoppingItemAdded, error) {
	s.gotDays = days
	return s.added, nil
}

func (s *stubShopping) TotalCostPerCategory(context.Context) ([]entity.CategoryTotal, error) {
	return s.totals, nil
}

type stubVideos struct {
	rows    []entity.VideoViewCount
	gotDays int
}

func (s *stubVideos) MostPopular(_ context.Context, days int) ([]entity.VideoViewCount, error) {
	s.gotDays = days
	return s.rows, nil
}

/* ───────── ヘルパ ───────── */

type fixture struct {
	products *stubProducts
	shopping *stubShopping
	videos   *stubVideos
	mux      *http.ServeMux
}

func newFixture() *fixture {
	f := &fixture{
		products: &stubProducts{rows: []entity.ProductSummary{
			{ProductID: 1, Name: "Fish tricks", Price: 13.1, Category: "Main"},
			{ProductID: 2, Name: "Not Dogs", Price: 4.99, Category: "Snack"},
		}},
		shopping: &stubShopping{},
		videos:   &stubVideos{},
		mux:      http.NewServeMux(),
	}
	hcatalog.Register(f.mux, &catUC.Service{Products: f.products, Shopping: f.shopping, Videos: f.videos})
	return f
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

/* ───────── 1. products ───────── */

func TestProductsPage(t *testing.T) {
	f := newFixture()

	rr := f.get(t, "/products?page=3")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 20, f.products.gotOffset)

	var got hcatalog.ProductPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 10, got.PageSize)
	assert.Len(t, got.Data, 2)
}

func TestProductsPage_DefaultsToFirstPage(t *testing.T) {
	f := newFixture()
	rr := f.get(t, "/products")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, f.products.gotOffset)
}

func TestProductsPage_BadPage(t *testing.T) {
	f := newFixture()
	for _, q := range []string{"0", "-2", "two"} {
		t.Run(q, func(t *testing.T) {
			rr := f.get(t, "/products?page="+q)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "page must be a positive integer")
		})
	}
}

func TestProductSearch(t *testing.T) {
	f := newFixture()

	rr := f.get(t, "/products/search?q=fish")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fish", f.products.gotTerm)

	rr = f.get(t, "/products/search")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "q is required")
}

func TestProductLookup(t *testing.T) {
	f := newFixture()

	rr := f.get(t, "/products/lookup?name=Not+Dogs")
	require.Equal(t, http.StatusOK, rr.Code)
	var got entity.ProductSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(2), got.ProductID)

	assert.Equal(t, http.StatusNotFound, f.get(t, "/products/lookup?name=nothing").Code)
	assert.Equal(t, http.StatusBadRequest, f.get(t, "/products/lookup").Code)
}

func TestProductsWithImages_EmptyIsArray(t *testing.T) {
	f := newFixture()
	rr := f.get(t, "/products/with-images")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestStorageFailureIs500(t *testing.T) {
	f := newFixture()
	f.products.err = errors.New("connection refused")
	rr := f.get(t, "/products/with-images")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
}

/* ───────── 2. shopping list ───────── */

func TestShoppingPage(t *testing.T) {
	f := newFixture()
	f.shopping.names = []entity.ShoppingItemName{{Name: "Tofurkey"}}

	rr := f.get(t, "/shopping-list?page=2")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 6, f.shopping.gotOffset)
	assert.JSONEq(t, `{"data":[{"name":"Tofurkey"}],"page":2,"page_size":6}`, rr.Body.String())
}

func TestShoppingRecent(t *testing.T) {
	f := newFixture()
	f.shopping.added = []entity.ShoppingItemAdded{
		{Name: "Mascarpone", DateAdded: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
	}

	rr := f.get(t, "/shopping-list/recent?days=30")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 30, f.shopping.gotDays)
	assert.JSONEq(t, `[{"name":"Mascarpone","date_added":"2026-10-01T00:00:00Z"}]`, rr.Body.String())

	tests := map[string]string{
		"missing":  "/shopping-list/recent",
		"negative": "/shopping-list/recent?days=-1",
		"text":     "/shopping-list/recent?days=week",
	}
	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, f.get(t, target).Code)
		})
	}
}

func TestCategoryTotals(t *testing.T) {
	f := newFixture()
	f.shopping.totals = []entity.CategoryTotal{{Category: "Breakfast", Total: 12.5}}

	rr := f.get(t, "/shopping-list/totals")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"category":"Breakfast","total":12.5}]`, rr.Body.String())
}

/* ───────── 3. videos ───────── */

func TestPopularVideos(t *testing.T) {
	f := newFixture()
	f.videos.rows = []entity.VideoViewCount{{VideoName: "Cats", Region: "Asia", Views: 9}}

	rr := f.get(t, "/videos/popular?days=0")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, f.videos.gotDays)
	assert.JSONEq(t, `[{"video_name":"Cats","region":"Asia","views":9}]`, rr.Body.String())

	rr = f.get(t, "/videos/popular?days=-5")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "days must be at least 0")
}
