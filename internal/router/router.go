package router

import (
	"net/http"

	"github.com/Devepooper/yatube/internal/handlers"
	"github.com/Devepooper/yatube/internal/identity"
	appmiddleware "github.com/Devepooper/yatube/internal/middleware"
	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/pagecache"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/Devepooper/yatube/internal/session"
	"github.com/Devepooper/yatube/internal/storage"
	"github.com/Devepooper/yatube/pkg/config"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger zerolog.Logger) {
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
}

// ErrorHandler renders the error pages: a dedicated 404 page for
// missing routes and entities, a generic page for everything else.
// Redirect-style denials never reach here.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
	}
	if c.Response().Committed {
		return
	}

	template := "core/error.html"
	if code == http.StatusNotFound {
		template = "core/404.html"
	}
	if renderErr := c.Render(code, template, echo.Map{}); renderErr != nil {
		c.Logger().Error(renderErr)
	}
}

// SetupRoutes runs migrations and wires repositories, handlers and
// route groups.
func SetupRoutes(
	e *echo.Echo,
	db *gorm.DB,
	cache pagecache.Cache,
	store storage.Store,
	sessions *session.Manager,
	verifier identity.TokenVerifier,
	cfg *config.Config,
	logger zerolog.Logger,
) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		return err
	}
	logger.Info().Msg("database migrations completed")

	e.HTTPErrorHandler = ErrorHandler

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	provider := identity.NewLocalProvider(userRepo)

	// Public pages know the current user when a session exists.
	public := e.Group("", appmiddleware.OptionalAuth(sessions, userRepo))
	// Mutating pages require one.
	protected := e.Group("", appmiddleware.RequireAuth(sessions, userRepo))

	authHandler := handlers.NewAuthHandler(provider, verifier, sessions)
	authHandler.RegisterAuthRoutes(public)

	feedHandler := handlers.NewFeedHandler(postRepo, groupRepo, userRepo, followRepo, cache, cfg.CacheTTL)
	feedHandler.RegisterFeedRoutes(public)
	feedHandler.RegisterProtectedFeedRoutes(protected)

	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, store)
	postHandler.RegisterPostRoutes(public)
	postHandler.RegisterProtectedPostRoutes(protected)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(protected)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(protected)

	// Locally stored images are served straight from the media root.
	if cfg.AWSBucketName == "" {
		e.Static("/media", cfg.MediaRoot)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	logger.Info().Msg("all routes configured")
	return nil
}
