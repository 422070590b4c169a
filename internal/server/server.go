package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/George-coder-ai/MarkIt-Up1/config"
	"github.com/George-coder-ai/MarkIt-Up1/internal/db"
	"github.com/George-coder-ai/MarkIt-Up1/internal/handlers"
	"github.com/George-coder-ai/MarkIt-Up1/internal/identity"
	"github.com/George-coder-ai/MarkIt-Up1/internal/services"
	"github.com/George-coder-ai/MarkIt-Up1/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	mongoDB    *mongo.Database
}

// New constructs a Server. The store backend is selected here, once:
// the document database only when a non-local connection string is
// configured, the in-memory fallback otherwise.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	var userStore store.UserStore
	var mongoDB *mongo.Database
	if cfg.Database.UseMemory() {
		log.Printf("no document database configured, using in-memory store")
		userStore = store.NewMemoryStore()
	} else {
		database, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		mongoDB = database
		userStore = store.NewMongoStore(database)
	}

	gateway, err := identity.NewFirebase(ctx, cfg.FirebaseKeyPath)
	if err != nil {
		return nil, err
	}

	userService := services.NewUserService(userStore)
	healthHandler := handlers.NewHealthHandler(userStore)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/health", healthHandler.Health)
	router.Get("/db-check", healthHandler.DBCheck)
	router.Get("/debug/users", healthHandler.DebugUsers)
	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}))
		r.Route("/auth", func(r chi.Router) {
			handlers.AuthRouter(r, userService, gateway, cfg.JWTSecret)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 5000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		mongoDB:    mongoDB,
	}, nil
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
	if s.mongoDB != nil {
		_ = s.mongoDB.Client().Disconnect(context.Background())
	}
	return s.httpServer.Close()
}
