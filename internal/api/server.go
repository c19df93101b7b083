// Package api exposes the engine over an HTTP/JSON surface: account auth,
// player and match CRUD, roster mutations, team balancing, the dashboard,
// and a WebSocket feed of match updates.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/koratime/server/internal/auth"
	"github.com/koratime/server/internal/metrics"
	"github.com/koratime/server/internal/roster"
	"github.com/koratime/server/internal/storage"
)

// Server is the REST API server.
type Server struct {
	server  *http.Server
	handler *Handler
}

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	store         storage.Store
	reconciler    *roster.Reconciler
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
	hub           *Hub
}

// NewServer wires the routes and middleware for the given dependencies.
// corsOrigin is the allowed browser origin ("*" for development).
func NewServer(addr string, store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, corsOrigin string) *Server {
	handler := &Handler{
		store:         store,
		reconciler:    roster.NewReconciler(store),
		authenticator: authenticator,
		jwt:           jwtManager,
		hub:           NewHub(),
	}

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(MetricsMiddleware)

	// Health check and metrics
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Live match-update feed
	router.HandleFunc("/ws", handler.hub.HandleConnection)

	// Public auth routes
	public := router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/register", handler.Register).Methods("POST")
	public.HandleFunc("/login", handler.Login).Methods("POST")

	// Everything else requires a session token
	api := router.PathPrefix("/api").Subrouter()
	api.Use(RequireAuth(jwtManager))

	// Players
	api.HandleFunc("/players", handler.ListPlayers).Methods("GET")
	api.HandleFunc("/players", handler.CreatePlayer).Methods("POST")
	api.HandleFunc("/players/{playerID}", handler.UpdatePlayer).Methods("PUT")
	api.HandleFunc("/players/{playerID}", handler.DeletePlayer).Methods("DELETE")

	// Matches
	api.HandleFunc("/matches", handler.ListMatches).Methods("GET")
	api.HandleFunc("/matches", handler.CreateMatch).Methods("POST")
	api.HandleFunc("/matches/{matchID}", handler.ReplaceMatch).Methods("PUT")
	api.HandleFunc("/matches/{matchID}", handler.DeleteMatch).Methods("DELETE")
	api.HandleFunc("/matches/{matchID}/stats", handler.GetMatchStats).Methods("GET")

	// Roster mutations
	api.HandleFunc("/matches/{matchID}/roster/{playerID}/presence", handler.TogglePresence).Methods("POST")
	api.HandleFunc("/matches/{matchID}/roster/{playerID}/paid", handler.TogglePaid).Methods("POST")
	api.HandleFunc("/matches/{matchID}/roster/{playerID}/amount", handler.SetAmount).Methods("POST")

	// Team balancing and dashboard
	api.HandleFunc("/teams", handler.GenerateTeams).Methods("POST")
	api.HandleFunc("/dashboard", handler.GetDashboard).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return &Server{
		handler: handler,
		server: &http.Server{
			Addr:         addr,
			Handler:      c.Handler(router),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// Start starts the REST API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// HealthCheck reports server liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
