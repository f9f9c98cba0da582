package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

// SessionCookieName is the HTTP cookie carrying the opaque session id when
// the cookie strategy is active.
const SessionCookieName = "book_tracker_session"

// userIDKey is the Echo context key the gate stores the caller's id under.
const userIDKey = "user_id"

// RequireUser is the single enforcement point for protected routes. It
// extracts the credential the active strategy expects, verifies it, and
// injects the resolved user id into the request context. Any failure
// short-circuits before the downstream handler runs; no handler performs
// its own identity check.
func RequireUser(strategy ports.SessionStrategy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented, err := ExtractCredential(c, strategy.Kind())
			if err != nil {
				return err
			}

			userID, err := strategy.Verify(c.Request().Context(), presented)
			if err != nil {
				return err
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// ExtractCredential pulls the raw credential out of the request: the bearer
// token from the Authorization header or the session id from the cookie,
// depending on the strategy. Missing or malformed carriers fail closed with
// domain.ErrUnauthenticated, never an anonymous fallback.
func ExtractCredential(c echo.Context, kind ports.CredentialKind) (string, error) {
	switch kind {
	case ports.KindBearer:
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return "", domain.ErrUnauthenticated
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", domain.ErrUnauthenticated
		}
		return parts[1], nil

	case ports.KindCookie:
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return "", domain.ErrUnauthenticated
		}
		return cookie.Value, nil
	}
	return "", domain.ErrUnauthenticated
}

// SetSessionCookie writes the session cookie after a cookie-strategy login.
func SetSessionCookie(c echo.Context, cred *ports.Credential) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    cred.Value,
		Path:     "/",
		MaxAge:   int(cred.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie instructs the client to discard its session id.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
