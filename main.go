package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vehicle-market/config"
	httpLayer "vehicle-market/http"
	"vehicle-market/logger"
	"vehicle-market/repository"
	"vehicle-market/service"
)

const loanHistoryLimit = 1000

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.Server.LogLevel)

	catalogRepo, err := repository.LoadCatalogYAML(cfg.Catalog.File)
	if err != nil {
		log.Error("failed to load catalog", "file", cfg.Catalog.File, "error", err)
		os.Exit(1)
	}

	cache := newCache(cfg.Cache, log)

	loanRepo := repository.NewLoanRepositoryMemory(loanHistoryLimit)
	loanService := service.NewLoanService(loanRepo, cache, cfg.Cache.TTL)
	loanHandler := httpLayer.NewLoanHandler(loanService)

	catalogService := service.NewCatalogService(catalogRepo)
	catalogHandler := httpLayer.NewCatalogHandler(catalogService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: httpLayer.NewRouter(httpLayer.RouterConfig{
			Loan:           loanHandler,
			Catalog:        catalogHandler,
			RateLimiter:    rateLimiter,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("api listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("error starting server", "error", err)
		return
	case <-quit:
		log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("error during server shutdown", "error", err)
	}

	log.Info("server exited")
}

// newCache uses Redis when configured and reachable, the in-process cache otherwise.
func newCache(cfg config.CacheConfig, log *slog.Logger) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(cfg.TTL, 2*cfg.TTL)
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unavailable, using in-process cache", "addr", cfg.RedisAddr, "error", err)
		_ = redisCache.Close()
		return repository.NewMemoryCache(cfg.TTL, 2*cfg.TTL)
	}

	log.Info("using redis cache", "addr", cfg.RedisAddr)
	return redisCache
}
