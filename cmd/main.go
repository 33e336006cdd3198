package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/auth"
	"github.com/autolux/marketplace-api/internal/brands"
	"github.com/autolux/marketplace-api/internal/cache"
	"github.com/autolux/marketplace-api/internal/categories"
	"github.com/autolux/marketplace-api/internal/config"
	"github.com/autolux/marketplace-api/internal/favorites"
	"github.com/autolux/marketplace-api/internal/orders"
	"github.com/autolux/marketplace-api/internal/reviews"
	"github.com/autolux/marketplace-api/internal/simulations"
	"github.com/autolux/marketplace-api/internal/storage"
	"github.com/autolux/marketplace-api/internal/users"
	"github.com/autolux/marketplace-api/internal/utils"
	"github.com/autolux/marketplace-api/internal/utils/db"
	"github.com/autolux/marketplace-api/internal/vehicles"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.GetDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := migrate(database); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	c, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("tokens: %w", err)
	}
	sessions := auth.NewSessions(database, tokens, cfg.RefreshTTL, cfg.CookieSecure, logger)

	limiter := auth.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	defer limiter.Stop()

	jobs, err := auth.StartCleanup(cfg.TokenCleanupCron, sessions, logger)
	if err != nil {
		return fmt.Errorf("cleanup job: %w", err)
	}
	defer jobs.Stop()

	userRepo := users.NewRepository(database)
	vehicleRepo := vehicles.NewRepository(database)

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	login := auth.NewHandler(users.Identities{Repo: userRepo}, sessions, logger)
	limited := auth.RateLimit(limiter)
	r.Handle("/auth/login", limited(http.HandlerFunc(login.Login))).Methods(http.MethodPost)
	r.Handle("/auth/refresh", limited(http.HandlerFunc(sessions.RefreshHandler))).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", sessions.LogoutHandler).Methods(http.MethodPost)

	protect := auth.Middleware(tokens)

	users.NewHandler(userRepo, store, logger).RegisterRoutes(r, protect)
	brands.NewHandler(brands.NewRepository(database), c, cfg.CacheTTL, logger).RegisterRoutes(r, protect)
	categories.NewHandler(categories.NewRepository(database), c, cfg.CacheTTL, logger).RegisterRoutes(r, protect)
	vehicles.NewHandler(vehicles.NewService(vehicleRepo, store, logger), logger).RegisterRoutes(r, protect)
	orders.NewHandler(orders.NewRepository(database), logger).RegisterRoutes(r, protect)
	reviews.NewHandler(reviews.NewRepository(database), logger).RegisterRoutes(r, protect)
	favorites.NewHandler(favorites.NewRepository(database), logger).RegisterRoutes(r, protect)

	simService := simulations.NewService(
		simulations.NewRepository(database),
		vehicles.PriceLookup{Repo: vehicleRepo},
		logger,
	)
	simulations.NewHandler(simService, logger).RegisterRoutes(r, protect)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func migrate(database *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		users.Migrate,
		auth.Migrate,
		brands.Migrate,
		categories.Migrate,
		vehicles.Migrate,
		simulations.Migrate,
		orders.Migrate,
		reviews.Migrate,
		favorites.Migrate,
	} {
		if err := m(database); err != nil {
			return err
		}
	}
	return nil
}

// newCache prefers redis and falls back to process memory when REDIS_ADDR is
// unset or unreachable.
func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Cache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(), func() {}
	}
	rc := cache.NewRedisCache(cfg.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rc.Close()
		return cache.NewMemoryCache(), func() {}
	}
	return rc, func() { _ = rc.Close() }
}

func newStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Uploader, error) {
	if cfg.S3Bucket == "" {
		logger.Warn("S3_BUCKET not set, uploads are disabled")
		return storage.Disabled{}, nil
	}
	return storage.NewS3Storage(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix, logger)
}
