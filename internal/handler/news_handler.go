package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"newsroom/internal/auth"
	apperrors "newsroom/internal/errors"
	"newsroom/internal/middleware"
	"newsroom/internal/model"
	"newsroom/internal/service"
)

// NewsHandler serves the public content pages and the admin dashboard.
type NewsHandler struct {
	newsService service.NewsService
	sessions    auth.SessionStoreInterface
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(newsService service.NewsService, sessions auth.SessionStoreInterface) *NewsHandler {
	return &NewsHandler{newsService: newsService, sessions: sessions}
}

// AddNewsForm represents the admin add-news form payload.
type AddNewsForm struct {
	Title    string `form:"title" validate:"required"`
	Category string `form:"category" validate:"required"`
	Content  string `form:"content" validate:"required"`
}

// Home renders the trending set and the remaining feed. A query failure
// degrades to an empty page rather than an error response.
func (h *NewsHandler) Home(c echo.Context) error {
	trending, feed, err := h.newsService.Home(c.Request().Context())
	if err != nil {
		log.Printf("home feed: %v", err)
		trending, feed = []model.News{}, []model.News{}
	}

	return c.Render(http.StatusOK, "home", echo.Map{
		"CurrentUser":  middleware.CurrentUser(c),
		"TrendingNews": trending,
		"AllNews":      feed,
	})
}

// ListCategories renders all categories.
func (h *NewsHandler) ListCategories(c echo.Context) error {
	categories, err := h.newsService.ListCategories(c.Request().Context())
	if err != nil {
		log.Printf("list categories: %v", err)
		h.flashError(c, "Failed to load categories")
		return c.Redirect(http.StatusFound, "/")
	}

	return c.Render(http.StatusOK, "categories", echo.Map{
		"CurrentUser": middleware.CurrentUser(c),
		"Categories":  categories,
	})
}

// CategoryDetail renders one category's news plus the global trending
// sidebar. An unknown category is a hard 404.
func (h *NewsHandler) CategoryDetail(c echo.Context) error {
	category, news, trending, err := h.newsService.CategoryDetail(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
		}
		log.Printf("category detail: %v", err)
		h.flashError(c, "Failed to load category")
		return c.Redirect(http.StatusFound, "/categories")
	}

	return c.Render(http.StatusOK, "category", echo.Map{
		"CurrentUser":  middleware.CurrentUser(c),
		"Category":     category,
		"News":         news,
		"TrendingNews": trending,
	})
}

// Dashboard renders the admin add-news form with any pending flash.
func (h *NewsHandler) Dashboard(c echo.Context) error {
	categories, err := h.newsService.ListCategories(c.Request().Context())
	if err != nil {
		log.Printf("dashboard categories: %v", err)
		h.flashError(c, "Failed to load news page")
		return c.Redirect(http.StatusFound, "/")
	}

	var successMsg, errorMsg string
	if flash := middleware.ConsumedFlash(c); flash != nil {
		successMsg, errorMsg = flash.Success, flash.Error
	}

	return c.Render(http.StatusOK, "news", echo.Map{
		"CurrentUser": middleware.CurrentUser(c),
		"Categories":  categories,
		"Success":     successMsg,
		"Error":       errorMsg,
	})
}

// AddNews publishes a news item and reports the outcome through a
// consume-once flash on the dashboard.
func (h *NewsHandler) AddNews(c echo.Context) error {
	var form AddNewsForm
	if err := c.Bind(&form); err != nil {
		h.flashError(c, "All fields are required")
		return c.Redirect(http.StatusFound, "/news")
	}
	if err := c.Validate(&form); err != nil {
		h.flashError(c, "All fields are required")
		return c.Redirect(http.StatusFound, "/news")
	}

	if _, err := h.newsService.AddNews(c.Request().Context(), form.Title, form.Category, form.Content); err != nil {
		if errors.Is(err, apperrors.ErrMissingFields) {
			h.flashError(c, "All fields are required")
		} else {
			log.Printf("add news: %v", err)
			h.flashError(c, "Error adding news")
		}
		return c.Redirect(http.StatusFound, "/news")
	}

	h.flash(c, auth.Flash{Success: "News added successfully!"})
	return c.Redirect(http.StatusFound, "/news")
}

func (h *NewsHandler) flashError(c echo.Context, message string) {
	h.flash(c, auth.Flash{Error: message})
}

func (h *NewsHandler) flash(c echo.Context, flash auth.Flash) {
	token := middleware.SessionToken(c)
	if token == "" {
		return
	}
	if err := h.sessions.SetFlash(c.Request().Context(), token, flash); err != nil {
		log.Printf("set flash: %v", err)
	}
}
