package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"merchant-be/internal/config"
	"merchant-be/internal/controllers"
	"merchant-be/internal/database"
	"merchant-be/internal/jwt"
	"merchant-be/internal/logging"
	"merchant-be/internal/middleware"
	"merchant-be/internal/password"
	"merchant-be/internal/redisstore"
	"merchant-be/internal/repository"
	"merchant-be/internal/router"
	"merchant-be/internal/service"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := database.NewConnection(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer disconnect(client, logger)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	authLimiter, closeLimiter := newAuthLimiter(ctx, cfg, logger)
	defer closeLimiter()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	merchantRepo := repository.NewMerchantRepository(db)

	// Services
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, password.NewHasher(cfg.BcryptCost), jwtService)
	merchantService := service.NewMerchantService(merchantRepo)

	gin.SetMode(gin.ReleaseMode)
	handler := router.New(router.Deps{
		Logger:             logger,
		CORSOrigins:        cfg.CORSOrigins,
		TrustedProxies:     cfg.TrustedProxies,
		AuthController:     controllers.NewAuthController(authService, cfg.CookieSecure),
		MerchantController: controllers.NewMerchantController(merchantService),
		QRCodeController:   controllers.NewQRCodeController(merchantService, cfg.FrontendURL),
		Sessions:           authService,
		AuthLimiter:        authLimiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newAuthLimiter prefers a Redis-backed limiter so replicas share counts.
// Without REDIS_URL, or when Redis is unreachable, limits are kept in process.
func newAuthLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (middleware.Limiter, func()) {
	if cfg.RedisURL != "" {
		client, err := redisstore.NewClient(ctx, cfg.RedisURL)
		if err == nil {
			logger.Info("auth rate limiting backed by redis")
			return redisstore.NewWindowLimiter(client, "auth", cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst),
				func() { _ = client.Close() }
		}
		logger.Warn("failed to connect to redis, continuing with in-process rate limiting", "err", err)
	}

	rl := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	return rl, rl.Close
}
