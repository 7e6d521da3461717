package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"newsroom/internal/auth"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

// Echo context keys populated by LoadSession.
const (
	ContextUserKey  = "currentUser"
	ContextTokenKey = "sessionToken"
	ContextFlashKey = "flash"
)

// LoadSession resolves the session cookie once per request and attaches the
// identity, token and consumed flash to the context. An unknown or expired
// token reads as logged out; it never fails the request.
func LoadSession(sessions auth.SessionStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			identity, err := sessions.Resolve(ctx, cookie.Value)
			if err != nil {
				log.Printf("resolve session: %v", err)
				return next(c)
			}
			if identity == nil {
				return next(c)
			}

			c.Set(ContextUserKey, identity)
			c.Set(ContextTokenKey, cookie.Value)

			flash, err := sessions.PopFlash(ctx, cookie.Value)
			if err != nil {
				log.Printf("pop flash: %v", err)
			} else if flash != nil {
				c.Set(ContextFlashKey, flash)
			}

			return next(c)
		}
	}
}

// CurrentUser returns the resolved identity, or nil for guests.
func CurrentUser(c echo.Context) *auth.Identity {
	if identity, ok := c.Get(ContextUserKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

// SessionToken returns the current session token, or "" for guests.
func SessionToken(c echo.Context) string {
	if token, ok := c.Get(ContextTokenKey).(string); ok {
		return token
	}
	return ""
}

// ConsumedFlash returns the flash popped for this request, if any.
func ConsumedFlash(c echo.Context) *auth.Flash {
	if flash, ok := c.Get(ContextFlashKey).(*auth.Flash); ok {
		return flash
	}
	return nil
}

// RequireGuest sends authenticated identities back home. Applied to the
// register and login pages.
func RequireGuest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) != nil {
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}

// RequireAuth redirects guests to the login page.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// RequireAdmin denies non-admin identities with a hard 403 rather than a
// redirect. Guests still get the RequireAuth redirect first.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireAuth(func(c echo.Context) error {
		if !CurrentUser(c).IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "Forbidden: Admins only")
		}
		return next(c)
	})
}
