package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/terrapoint/terrapoint/infrastructure/http/handler"
	"github.com/terrapoint/terrapoint/infrastructure/http/middleware"
	"github.com/terrapoint/terrapoint/infrastructure/service/logger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Entity        *handler.EntityHandler
	PendingAction *handler.PendingActionHandler
	User          *handler.UserManagementHandler
	Document      *handler.DocumentHandler
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Port                string
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
	CORSAllowedOrigins  []string
	CorrelationIDHeader string
}

// Server wires handlers and middleware into one http.Server.
type Server struct {
	server *http.Server
	logger logger.Logger
}

func NewServer(
	config ServerConfig,
	handlers Handlers,
	rateLimit *middleware.RateLimitMiddleware,
	db *sql.DB,
	log logger.Logger,
) *Server {
	router := mux.NewRouter()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.CorrelationID(config.CorrelationIDHeader))
	router.Use(middleware.RequestLogging(log))
	router.Use(middleware.CORS(config.CORSAllowedOrigins))
	router.Use(rateLimit.RateLimit)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	// The entity handler's /{module} routes are catch-alls; register the
	// named surfaces first so they win.
	handlers.Auth.RegisterRoutes(api)
	handlers.PendingAction.RegisterRoutes(api)
	handlers.User.RegisterRoutes(api)
	handlers.Document.RegisterRoutes(api)
	handlers.Entity.RegisterRoutes(api)

	return &Server{
		server: &http.Server{
			Addr:         ":" + config.Port,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: log,
	}
}

func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
