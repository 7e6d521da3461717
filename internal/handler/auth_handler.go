package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "newsroom/internal/errors"
	"newsroom/internal/middleware"
	"newsroom/internal/service"
)

// AuthHandler serves the register, login and logout pages.
type AuthHandler struct {
	authService service.AuthService
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL}
}

// RegisterForm represents the registration form payload.
type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginForm represents the login form payload.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ShowRegister renders the empty registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register", echo.Map{
		"Error":   nil,
		"Success": nil,
		"Form":    RegisterForm{},
	})
}

// Register handles the registration form submission. Errors redisplay the
// form with the submitted values, minus the password.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return h.renderRegister(c, "Please fill all fields", form)
	}
	if err := c.Validate(&form); err != nil {
		return h.renderRegister(c, "Please fill all fields", form)
	}

	_, err := h.authService.Register(c.Request().Context(), form.Name, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingFields):
			return h.renderRegister(c, "Please fill all fields", form)
		case errors.Is(err, service.ErrReservedEmail):
			return h.renderRegister(c, "Admin cannot be registered. Use the given credentials.", form)
		case errors.Is(err, service.ErrUserAlreadyExists):
			return h.renderRegister(c, "Email already registered", form)
		default:
			log.Printf("register: %v", err)
			return h.renderRegister(c, "Server error", form)
		}
	}

	return c.Render(http.StatusOK, "register", echo.Map{
		"Error":   nil,
		"Success": "Registration successful! Redirecting to login...",
		"Form":    RegisterForm{},
	})
}

func (h *AuthHandler) renderRegister(c echo.Context, message string, form RegisterForm) error {
	form.Password = ""
	return c.Render(http.StatusOK, "register", echo.Map{
		"Error":   message,
		"Success": nil,
		"Form":    form,
	})
}

// ShowLogin renders the empty login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login", echo.Map{
		"Error":   nil,
		"Success": nil,
		"Form":    LoginForm{},
	})
}

// Login handles the login form submission. On success it sets the session
// cookie and redirects home.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return h.renderLogin(c, "Enter all fields", form)
	}
	if err := c.Validate(&form); err != nil {
		return h.renderLogin(c, "Enter all fields", form)
	}

	token, _, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingFields):
			return h.renderLogin(c, "Enter all fields", form)
		case errors.Is(err, service.ErrInvalidCredentials):
			return h.renderLogin(c, "Invalid credentials", form)
		default:
			log.Printf("login: %v", err)
			return h.renderLogin(c, "Server error", form)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLogin(c echo.Context, message string, form LoginForm) error {
	form.Password = ""
	return c.Render(http.StatusOK, "login", echo.Map{
		"Error":   message,
		"Success": nil,
		"Form":    form,
	})
}

// Logout destroys the session and clears the cookie. Destruction failures
// are logged but never fail the request.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.SessionToken(c)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		log.Printf("logout: %v", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/login")
}
