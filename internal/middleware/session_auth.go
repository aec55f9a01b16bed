package middleware

import (
	"net/http"

	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/Devepooper/yatube/internal/session"
	"github.com/labstack/echo/v4"
)

// CurrentUserKey is the echo context key the authenticated user is
// stored under.
const CurrentUserKey = "currentUser"

// LoginURL is where unauthenticated requests to protected routes are
// sent, with the original path preserved in the next parameter.
const LoginURL = "/auth/login/"

func currentUser(c echo.Context, sessions *session.Manager, userRepo repositories.UserRepository) *models.User {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := sessions.Parse(cookie.Value)
	if err != nil {
		return nil
	}
	user, err := userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// OptionalAuth resolves the session cookie to a user when present and
// valid, and passes the request through either way.
func OptionalAuth(sessions *session.Manager, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user := currentUser(c, sessions, userRepo); user != nil {
				c.Set(CurrentUserKey, user)
			}
			return next(c)
		}
	}
}

// RequireAuth redirects anonymous requests to the login page, keeping
// the original URL in the next parameter.
func RequireAuth(sessions *session.Manager, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c, sessions, userRepo)
			if user == nil {
				// Slashes are legal in query values; the path is kept
				// readable rather than percent-encoded.
				target := LoginURL + "?next=" + c.Request().URL.Path
				return c.Redirect(http.StatusFound, target)
			}
			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}
