package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/huematch/internal/config"
	dbPostgres "github.com/kailas-cloud/huematch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/huematch/internal/db/redis"
	"github.com/kailas-cloud/huematch/internal/domain/product"
	logpkg "github.com/kailas-cloud/huematch/internal/logger"
	"github.com/kailas-cloud/huematch/internal/metrics"
	"github.com/kailas-cloud/huematch/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/huematch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/huematch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/huematch/internal/usecase/recommend"
	"github.com/kailas-cloud/huematch/internal/version"
)

func main() {
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

	logger.Info("Starting huematch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_driver", cfg.Catalog.Driver),
	)

	ctx := context.Background()
	src, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		logger.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer src.close()
	logger.Info("Catalog ready", zap.String("driver", cfg.Catalog.Driver))

	metrics.RegisterRecommendMetrics()

	normalizer, err := product.NewNormalizer(cfg.Scoring.QualityScale)
	if err != nil {
		logger.Fatal("Invalid scoring config", zap.Error(err))
	}
	logger.Info("Scoring configured", zap.Float64("quality_scale", normalizer.QualityScale()))

	loader := recommenduc.NewInstrumentedLoader(src.loader, cfg.Catalog.Driver, logger)
	recommendSvc := recommenduc.New(loader, normalizer)
	healthSvc := healthuc.New(healthuc.Component{Name: "catalog", Pinger: src.pinger})

	server := chiTransport.NewServer(recommendSvc, healthSvc, logger)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// catalogSource bundles the loader for a configured driver with its health
// check and cleanup.
type catalogSource struct {
	loader recommenduc.CatalogLoader
	pinger healthuc.Pinger
	close  func()
}

// openCatalog connects to the configured catalog store and waits until it answers.
func openCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalogSource, error) {
	readiness := time.Duration(cfg.ReadinessTimeout) * time.Second

	switch cfg.Driver {
	case config.DriverRedis, config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.Addrs, Password: cfg.Password})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
		}
		return &catalogSource{
			loader: catalog.NewRedis(store, cfg.KeyPrefix),
			pinger: store,
			close:  store.Close,
		}, nil

	case config.DriverPostgres:
		store, err := dbPostgres.NewStore(dbPostgres.Config{DSN: cfg.DSN})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, fmt.Errorf("postgres not ready: %w", err)
		}
		return &catalogSource{
			loader: catalog.NewPostgres(store, cfg.Table),
			pinger: store,
			close:  store.Close,
		}, nil

	case config.DriverFile:
		repo := catalog.NewFile(cfg.Path)
		if err := repo.Ping(ctx); err != nil {
			return nil, err
		}
		return &catalogSource{loader: repo, pinger: repo, close: func() {}}, nil

	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
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

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
