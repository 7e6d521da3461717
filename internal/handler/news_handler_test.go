package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"newsroom/internal/auth"
	apperrors "newsroom/internal/errors"
	"newsroom/internal/middleware"
	"newsroom/internal/model"
)

// MockNewsService is a mock implementation of service.NewsService.
type MockNewsService struct {
	mock.Mock
}

func (m *MockNewsService) Home(ctx context.Context) ([]model.News, []model.News, error) {
	args := m.Called(ctx)
	trending, _ := args.Get(0).([]model.News)
	feed, _ := args.Get(1).([]model.News)
	return trending, feed, args.Error(2)
}

func (m *MockNewsService) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockNewsService) CategoryDetail(ctx context.Context, name string) (*model.Category, []model.News, []model.News, error) {
	args := m.Called(ctx, name)
	category, _ := args.Get(0).(*model.Category)
	news, _ := args.Get(1).([]model.News)
	trending, _ := args.Get(2).([]model.News)
	return category, news, trending, args.Error(3)
}

func (m *MockNewsService) AddNews(ctx context.Context, title, categoryName, content string) (*model.News, error) {
	args := m.Called(ctx, title, categoryName, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.News), args.Error(1)
}

// recordFlashStore records SetFlash calls; other operations are unused by
// the handlers under test.
type recordFlashStore struct {
	token string
	flash auth.Flash
	calls int
}

func (r *recordFlashStore) Create(ctx context.Context, identity auth.Identity) (string, error) {
	return "", nil
}

func (r *recordFlashStore) Resolve(ctx context.Context, token string) (*auth.Identity, error) {
	return nil, nil
}

func (r *recordFlashStore) Destroy(ctx context.Context, token string) error {
	return nil
}

func (r *recordFlashStore) SetFlash(ctx context.Context, token string, flash auth.Flash) error {
	r.token = token
	r.flash = flash
	r.calls++
	return nil
}

func (r *recordFlashStore) PopFlash(ctx context.Context, token string) (*auth.Flash, error) {
	return nil, nil
}

func TestNewsHandler_Home(t *testing.T) {
	t.Run("renders trending and feed", func(t *testing.T) {
		trending := []model.News{{ID: 2, Title: "Newest", Category: "Sports"}}
		feed := []model.News{{ID: 1, Title: "Older", Category: "Sports"}}

		mockService := new(MockNewsService)
		mockService.On("Home", mock.Anything).Return(trending, feed, nil)

		renderer := &stubRenderer{}
		c, _ := newFormContext(http.MethodGet, "/", nil, renderer)

		h := NewNewsHandler(mockService, &recordFlashStore{})
		assert.NoError(t, h.Home(c))

		assert.Equal(t, "home", renderer.name)
		assert.Equal(t, trending, renderer.data["TrendingNews"])
		assert.Equal(t, feed, renderer.data["AllNews"])
	})

	t.Run("query failure degrades to an empty page", func(t *testing.T) {
		mockService := new(MockNewsService)
		mockService.On("Home", mock.Anything).Return(nil, nil, assert.AnError)

		renderer := &stubRenderer{}
		c, _ := newFormContext(http.MethodGet, "/", nil, renderer)

		h := NewNewsHandler(mockService, &recordFlashStore{})
		assert.NoError(t, h.Home(c))

		assert.Equal(t, "home", renderer.name)
		assert.Empty(t, renderer.data["TrendingNews"])
		assert.Empty(t, renderer.data["AllNews"])
	})
}

func TestNewsHandler_CategoryDetail(t *testing.T) {
	t.Run("unknown category is a hard 404", func(t *testing.T) {
		mockService := new(MockNewsService)
		mockService.On("CategoryDetail", mock.Anything, "Ghost").
			Return(nil, nil, nil, apperrors.ErrCategoryNotFound)

		renderer := &stubRenderer{}
		c, _ := newFormContext(http.MethodGet, "/categories/Ghost", nil, renderer)
		c.SetParamNames("name")
		c.SetParamValues("Ghost")

		h := NewNewsHandler(mockService, &recordFlashStore{})
		err := h.CategoryDetail(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("renders category news and trending sidebar", func(t *testing.T) {
		category := &model.Category{ID: 1, Name: "Sports"}
		news := []model.News{{ID: 4, Title: "Cricket Tournament", Category: "Sports"}}
		trending := []model.News{{ID: 4, Title: "Cricket Tournament", Category: "Sports"}}

		mockService := new(MockNewsService)
		mockService.On("CategoryDetail", mock.Anything, "Sports").
			Return(category, news, trending, nil)

		renderer := &stubRenderer{}
		c, _ := newFormContext(http.MethodGet, "/categories/Sports", nil, renderer)
		c.SetParamNames("name")
		c.SetParamValues("Sports")

		h := NewNewsHandler(mockService, &recordFlashStore{})
		assert.NoError(t, h.CategoryDetail(c))

		assert.Equal(t, "category", renderer.name)
		assert.Equal(t, category, renderer.data["Category"])
		assert.Equal(t, news, renderer.data["News"])
		assert.Equal(t, trending, renderer.data["TrendingNews"])
	})
}

func TestNewsHandler_Dashboard(t *testing.T) {
	mockService := new(MockNewsService)
	mockService.On("ListCategories", mock.Anything).Return([]model.Category{{ID: 1, Name: "Sports"}}, nil)

	renderer := &stubRenderer{}
	c, _ := newFormContext(http.MethodGet, "/news", nil, renderer)
	c.Set(middleware.ContextFlashKey, &auth.Flash{Success: "News added successfully!"})

	h := NewNewsHandler(mockService, &recordFlashStore{})
	assert.NoError(t, h.Dashboard(c))

	assert.Equal(t, "news", renderer.name)
	assert.Equal(t, "News added successfully!", renderer.data["Success"])
	assert.Empty(t, renderer.data["Error"])
}

func TestNewsHandler_AddNews(t *testing.T) {
	t.Run("success stages a flash and redirects", func(t *testing.T) {
		mockService := new(MockNewsService)
		mockService.On("AddNews", mock.Anything, "Final tonight", "Sports", "Kickoff at nine.").
			Return(&model.News{ID: 1, Title: "Final tonight", Category: "Sports"}, nil)

		store := &recordFlashStore{}
		form := url.Values{"title": {"Final tonight"}, "category": {"Sports"}, "content": {"Kickoff at nine."}}
		c, rec := newFormContext(http.MethodPost, "/news/add", form, &stubRenderer{})
		c.Set(middleware.ContextTokenKey, "token-1")

		h := NewNewsHandler(mockService, store)
		assert.NoError(t, h.AddNews(c))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/news", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, 1, store.calls)
		assert.Equal(t, "token-1", store.token)
		assert.Equal(t, "News added successfully!", store.flash.Success)
	})

	t.Run("missing field never reaches the service", func(t *testing.T) {
		mockService := new(MockNewsService)
		store := &recordFlashStore{}

		form := url.Values{"title": {"Final tonight"}, "category": {""}, "content": {"Kickoff at nine."}}
		c, rec := newFormContext(http.MethodPost, "/news/add", form, &stubRenderer{})
		c.Set(middleware.ContextTokenKey, "token-1")

		h := NewNewsHandler(mockService, store)
		assert.NoError(t, h.AddNews(c))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/news", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, "All fields are required", store.flash.Error)
		mockService.AssertNotCalled(t, "AddNews", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
