package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/adapters/cache"
	"github.com/zatekoja/clinicdirectory/internal/adapters/database"
	"github.com/zatekoja/clinicdirectory/internal/adapters/security"
	"github.com/zatekoja/clinicdirectory/internal/api/handlers"
	"github.com/zatekoja/clinicdirectory/internal/api/routes"
	"github.com/zatekoja/clinicdirectory/internal/application/services"
	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/clients/redis"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/observability"
	"github.com/zatekoja/clinicdirectory/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// A missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	if cfg.Auth.UsesDevelopmentSecret() {
		log.Warn().Msg("JWT_SECRET is not set, using the development signing secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Database is optional at startup; API routes answer 500 until it is configured
	var (
		txManager repositories.TxManager
		dbPinger  handlers.Pinger
	)
	if cfg.Database.Configured() {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()

		if cfg.Database.AutoMigrate {
			if err := pgClient.Migrate(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply database schema")
			}
			log.Info().Msg("Database schema applied")
		}

		txManager = database.NewStore(pgClient, metrics)
		dbPinger = pgClient
	} else {
		log.Warn().Msg("Database is not configured, API routes will return errors")
	}

	// Cache is optional; without it every read goes to PostgreSQL
	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewInstrumentedCache(cache.NewRedisAdapter(redisClient), metrics)
		}
	}

	tokens := security.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	invalidations := services.NewCacheInvalidationService(cacheProvider)
	authService := services.NewAuthService(txManager, tokens, hasher)
	directoryService := services.NewClinicDirectoryService(txManager, cacheProvider, cfg.Redis.CacheTTL)
	reviewService := services.NewReviewService(txManager, invalidations)
	adminService := services.NewAdminService(txManager, invalidations)

	if cacheProvider != nil && txManager != nil {
		warmer := services.NewCacheWarmingService(directoryService, 0)
		go func() {
			warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := warmer.WarmCache(warmCtx); err != nil {
				log.Warn().Err(err).Msg("Cache warming failed")
			}
		}()
	}

	router := routes.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewClinicHandler(directoryService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewAdminHandler(adminService),
		handlers.NewHealthHandler(dbPinger),
		routes.Options{
			Tokens:         tokens,
			DBConfigured:   txManager != nil,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Metrics:        metrics,
		},
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
