package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/NJCA88/SneakyElves/internal/auth"
	"github.com/NJCA88/SneakyElves/internal/config"
	"github.com/NJCA88/SneakyElves/internal/feed"
	"github.com/NJCA88/SneakyElves/internal/metrics"
	"github.com/NJCA88/SneakyElves/internal/middleware"
	"github.com/NJCA88/SneakyElves/internal/purchase"
	"github.com/NJCA88/SneakyElves/internal/service"
	"github.com/NJCA88/SneakyElves/internal/storage/sqlite"
	"github.com/NJCA88/SneakyElves/pkg/api"
	"github.com/NJCA88/SneakyElves/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

type mountable interface {
	Handler(opts ...connect.HandlerOption) (string, http.Handler)
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	broadcaster := feed.NewBroadcaster(store, feed.Options{
		Workers:   cfg.FeedWorkers,
		QueueSize: cfg.FeedQueueSize,
		Metrics:   m,
		Logger:    logger,
	})
	authenticator := auth.NewPasswordAuthenticator(store)
	coordinator := purchase.NewCoordinator(store, broadcaster, logger)

	services := []mountable{
		service.NewAuthService(authenticator, store, broadcaster, logger),
		service.NewGroupService(store, authenticator, broadcaster, logger),
		service.NewWishlistService(store, coordinator, broadcaster, logger),
		service.NewSantaService(store, nil, logger),
		service.NewFeedService(feed.NewReader(store), broadcaster, logger),
		service.NewConversationService(store, logger),
		service.NewNotificationService(store, logger),
		service.NewContentService(store, logger),
	}

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireUser(store, api.PublicProcedures...),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	for _, svc := range services {
		path, handler := svc.Handler(interceptors)
		mux.Handle(path, handler)
		logger.Debug("Service mounted", "path", path)
	}

	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", m.Handler())
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			logger.Warn("Health check failed", "error", err)
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		logger.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	logger.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	// h2c serves HTTP/2 without TLS for Connect clients.
	handler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	// Drain queued feed writes before the store closes.
	broadcaster.Close()
}

// staticHandler serves the frontend, falling back to index.html for unknown paths.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, api.ProcedurePrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.UserIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
