package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/userweather/apiserver/config"
	"github.com/userweather/apiserver/internal/db"
	"github.com/userweather/apiserver/internal/handlers"
	"github.com/userweather/apiserver/internal/observability"
	"github.com/userweather/apiserver/internal/openweather"
	"github.com/userweather/apiserver/internal/services"
	"github.com/userweather/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	redis      *redis.Client
}

// New constructs a Server: it opens the configured store backend, wires the
// OpenWeather client and user service, and registers all routes.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := newLogger(cfg.LogLevel)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	s := &Server{router: chi.NewRouter()}

	records, err := s.openStore(ctx, cfg, clock)
	if err != nil {
		return nil, err
	}

	weatherClient := openweather.NewClient(cfg.OpenWeather, metrics, logger)
	userService := services.NewUserService(records, weatherClient, weatherClient, metrics)

	s.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	s.router.Get("/healthz", handlers.Healthz)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Route("/api/users", func(r chi.Router) {
		handlers.UserRouter(r, userService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) openStore(ctx context.Context, cfg config.Config, clock clockwork.Clock) (store.RecordStore, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s.db = dbConn
		return store.NewPostgresStore(dbConn, clock), nil

	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		s.redis = client
		return store.NewRedisStore(client, clock), nil

	case config.StoreBackendMemory:
		return store.NewMemoryStore(clock), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
	return s.httpServer.Close()
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
