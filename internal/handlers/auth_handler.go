package handlers

import (
	"net/http"
	"strings"

	"github.com/Devepooper/yatube/internal/identity"
	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/session"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles login and logout. Authentication itself is
// delegated to an identity provider; this handler only exchanges a
// successful authentication for a session cookie.
type AuthHandler struct {
	provider identity.Provider
	verifier identity.TokenVerifier // optional, external token login
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil when no
// external identity provider is configured.
func NewAuthHandler(provider identity.Provider, verifier identity.TokenVerifier, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		verifier: verifier,
		sessions: sessions,
	}
}

// RegisterAuthRoutes registers the auth routes
func (h *AuthHandler) RegisterAuthRoutes(public *echo.Group) {
	public.GET("/auth/login/", h.LoginForm)
	public.POST("/auth/login/", h.Login)
	public.GET("/auth/logout/", h.Logout)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "users/login.html", renderData(c, echo.Map{
		"Next": c.QueryParam("next"),
	}))
}

// Login authenticates the submitted credentials and, on success, sets
// the session cookie and follows the next parameter.
func (h *AuthHandler) Login(c echo.Context) error {
	form := models.LoginForm{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
		Next:     c.FormValue("next"),
	}

	var user *models.User
	var err error

	// An id_token field means the client already authenticated against
	// the external identity provider.
	if idToken := c.FormValue("id_token"); idToken != "" && h.verifier != nil {
		user, err = h.verifier.VerifyToken(c.Request().Context(), idToken)
	} else {
		user, err = h.provider.Authenticate(c.Request().Context(), form.Username, form.Password)
	}
	if err != nil {
		return c.Render(http.StatusOK, "users/login.html", renderData(c, echo.Map{
			"Error": "Invalid username or password.",
			"Next":  form.Next,
		}))
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	c.SetCookie(session.Cookie(token))
	return c.Redirect(http.StatusFound, safeNext(form.Next))
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(session.ExpiredCookie())
	return c.Redirect(http.StatusFound, "/")
}
