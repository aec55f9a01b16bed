package main

import (
	"context"
	"os"

	"github.com/Devepooper/yatube/internal/identity"
	"github.com/Devepooper/yatube/internal/pagecache"
	"github.com/Devepooper/yatube/internal/render"
	"github.com/Devepooper/yatube/internal/repositories"
	"github.com/Devepooper/yatube/internal/router"
	"github.com/Devepooper/yatube/internal/session"
	"github.com/Devepooper/yatube/internal/storage"
	"github.com/Devepooper/yatube/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer config.CloseDB(db)

	// Page cache: Redis when configured, in-process otherwise.
	var cache pagecache.Cache
	if cfg.RedisAddr != "" {
		cache, err = pagecache.NewRedisCache(cfg.RedisAddr)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using Redis page cache")
	} else {
		cache = pagecache.NewMemoryCache()
	}

	// Image storage: S3 when a bucket is configured, local disk otherwise.
	ctx := context.Background()
	var store storage.Store
	if cfg.AWSBucketName != "" {
		store, err = storage.NewS3Store(ctx, cfg.AWSBucketName, cfg.AWSRegion)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize S3 storage")
		}
		logger.Info().Str("bucket", cfg.AWSBucketName).Msg("using S3 image storage")
	} else {
		store, err = storage.NewLocalStore(cfg.MediaRoot)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize local storage")
		}
	}

	// Optional external identity provider for token-based login.
	var verifier identity.TokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		userRepo := repositories.NewPostgresUserRepository(db)
		firebaseProvider, err := identity.NewFirebaseProvider(ctx, cfg.FirebaseCredentialsPath, userRepo)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize Firebase")
		}
		verifier = firebaseProvider
		logger.Info().Msg("Firebase identity provider enabled")
	}

	sessions := session.NewManager(cfg.SessionSecret)

	e := echo.New()
	e.HideBanner = true

	renderer, err := render.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}
	e.Renderer = renderer

	router.SetupMiddleware(e, logger)
	if err := router.SetupRoutes(e, db, cache, store, sessions, verifier, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to set up routes")
	}

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
