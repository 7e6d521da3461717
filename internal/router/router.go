package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"newsroom/internal/auth"
	"newsroom/internal/handler"
	"newsroom/internal/middleware"
)

// loginRate caps login attempts per client IP.
const loginRate = rate.Limit(5)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions auth.SessionStoreInterface,
	authHandler *handler.AuthHandler,
	newsHandler *handler.NewsHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Resolve the session cookie once per request.
	e.Use(middleware.LoadSession(sessions))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/", newsHandler.Home)

	// Guest-only auth pages
	e.GET("/register", authHandler.ShowRegister, middleware.RequireGuest)
	e.POST("/register", authHandler.Register, middleware.RequireGuest)
	e.GET("/login", authHandler.ShowLogin, middleware.RequireGuest)
	e.POST("/login", authHandler.Login, middleware.RequireGuest,
		echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(loginRate)))
	e.POST("/logout", authHandler.Logout)

	// Authenticated browsing
	e.GET("/categories", newsHandler.ListCategories, middleware.RequireAuth)
	e.GET("/categories/:name", newsHandler.CategoryDetail, middleware.RequireAuth)

	// Admin dashboard; the first failing guard terminates the request
	news := e.Group("/news", middleware.RequireAuth, middleware.RequireAdmin)
	news.GET("", newsHandler.Dashboard)
	news.POST("/add", newsHandler.AddNews)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
