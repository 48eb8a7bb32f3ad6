package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"headway/internal/cache"
	"headway/internal/config"
	"headway/internal/handler"
	"headway/internal/i18n"
	"headway/internal/middleware"
	"headway/internal/routing"
	"headway/internal/store"
	"headway/pkg/valhalla"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting headway server",
		"version", version,
		"log_level", cfg.LogLevel.String(),
		"http_addr", cfg.HTTPAddr,
		"valhalla_url", cfg.ValhallaURL,
		"redis_enabled", cfg.RedisEnabled,
	)

	catalog, err := i18n.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		logger.Error("failed to load translations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	routeStore := store.New(cfg.RouteTTL)
	valhallaClient := valhalla.New(cfg.ValhallaURL, cfg.ValhallaTimeout)

	checks := map[string]handler.Check{
		"valhalla": valhallaClient.Status,
	}

	opts := routing.Options{
		CacheTTL:   cfg.CacheTTL,
		Observer:   handler.ServerStats,
		Alternates: cfg.RouteAlternates,
	}

	var redisCache *cache.RedisCache
	if cfg.RedisEnabled {
		redisCache, err = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without route cache", "error", err)
		} else {
			defer redisCache.Close()
			opts.Cache = redisCache
			checks["redis"] = redisCache.Ping

			flusher := cache.NewFlusher(redisCache, logger)
			if cfg.CacheFlushOnStart {
				flusher.FlushRoutes(ctx)
			}
			if cfg.CacheFlushAt > 0 {
				go flusher.ScheduleDaily(ctx, cfg.CacheFlushAt)
			}
		}
	}

	service := routing.NewService(valhallaClient, routeStore, opts, logger)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerWindow, cfg.RateLimitWindow, cfg.RateLimitWhitelist, logger)
	defer limiter.Stop()

	routeHandler := handler.NewRouteHandler(service, routeStore, catalog, cfg.TileZoomLevel, logger)
	wsHandler := handler.NewWSHandler(service, catalog, logger)
	healthHandler := handler.NewHealthHandler(routeStore, checks)
	statsHandler := handler.NewStatsHandler(routeStore, limiter, catalog.Locales(), version)

	proxy, err := handler.NewValhallaProxy(valhallaClient.BaseURL(), logger)
	if err != nil {
		logger.Error("failed to create routing engine proxy", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	limited := limiter.Middleware

	mux.Handle("GET /v1/routes", limited(http.HandlerFunc(routeHandler.Search)))
	mux.HandleFunc("GET /v1/routes/{id}", routeHandler.GetRoute)
	mux.HandleFunc("GET /v1/routes/{id}/geometry", routeHandler.GetGeometry)
	mux.HandleFunc("GET /v1/routes/{id}/steps", routeHandler.GetSteps)
	mux.HandleFunc("GET /v1/routes/{id}/layer", routeHandler.GetLayer)
	mux.HandleFunc("GET /v1/searches/{id}", routeHandler.GetSearch)
	mux.HandleFunc("GET /v1/stats", statsHandler.GetStats)

	mux.Handle("/valhalla/", limited(proxy))

	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)

	// WebSocket upgrades bypass gzip, which cannot hijack the connection.
	root := http.NewServeMux()
	root.Handle("/v1/ws", limited(http.HandlerFunc(wsHandler.ServeWS)))
	root.Handle("/", handler.GzipMiddleware(mux))

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.CORSMiddleware(root),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go routeStore.Run(ctx, cfg.RoutePruneInterval, logger)

	go func() {
		logger.Info("starting HTTP server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
