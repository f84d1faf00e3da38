package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/cache"
	"github.com/recruitu/lateral/internal/config"
	"github.com/recruitu/lateral/internal/domain/groups"
	logpkg "github.com/recruitu/lateral/internal/logger"
	"github.com/recruitu/lateral/internal/metrics"
	conversationrepo "github.com/recruitu/lateral/internal/repository/conversation"
	profilerepo "github.com/recruitu/lateral/internal/repository/profile"
	sessionrepo "github.com/recruitu/lateral/internal/repository/session"
	chiTransport "github.com/recruitu/lateral/internal/transport/chi"
	openaiResolver "github.com/recruitu/lateral/internal/transport/openai"
	"github.com/recruitu/lateral/internal/transport/recruitu"
	chatuc "github.com/recruitu/lateral/internal/usecase/chat"
	healthuc "github.com/recruitu/lateral/internal/usecase/health"
	profileuc "github.com/recruitu/lateral/internal/usecase/profile"
	searchuc "github.com/recruitu/lateral/internal/usecase/search"
	"github.com/recruitu/lateral/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lateral API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.Bool("chat_enabled", cfg.ChatEnabled()),
		zap.Bool("cache_enabled", cfg.CacheEnabled()),
	)

	// Profile cache is optional; without it every profile lookup goes
	// upstream.
	var store *cache.Store
	if cfg.CacheEnabled() {
		store, err = cache.NewStore(cache.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		readiness := time.Duration(cfg.Cache.ReadinessTimeoutSec) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache")
	}

	// Register upstream metrics explicitly (no init())
	metrics.RegisterUpstreamMetrics()

	upstream, err := recruitu.NewClient(&recruitu.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: time.Duration(cfg.Upstream.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("Failed to create upstream client", zap.Error(err))
	}

	// Conversational resolver is optional: without an api key the chat
	// endpoint reports chat as disabled.
	var resolver chatuc.Resolver
	if cfg.ChatEnabled() {
		resolver = openaiResolver.NewResolver(&openaiResolver.Config{
			APIKey:  cfg.Resolver.APIKey,
			BaseURL: cfg.Resolver.BaseURL,
			Model:   cfg.Resolver.Model,
			Logger:  logger,
		})
		logger.Info("Resolver created", zap.String("model", cfg.Resolver.Model))
	}

	sessions := sessionrepo.NewStore()
	conversations := conversationrepo.NewStore()

	var kv profilerepo.KV
	if store != nil {
		kv = store
	}
	profileRepo := profilerepo.New(upstream, kv, logger).
		WithTTL(time.Duration(cfg.Cache.ProfileTTLSec) * time.Second)

	searchSvc := searchuc.New(upstream, sessions, groups.Default(), logger).
		WithMaxSchoolsPerCall(cfg.Upstream.MaxSchoolsPerRequest)
	chatSvc := chatuc.New(resolver, searchSvc, conversations, sessions, logger).
		WithMaxToolRounds(cfg.Resolver.MaxToolRounds)
	profileSvc := profileuc.New(profileRepo)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger)

	server := chiTransport.NewServer(searchSvc, chatSvc, profileSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
