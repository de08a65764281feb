package api

import (
	"log"
	"net/http"
	"time"

	"github.com/isaacjstriker/notris/internal/config"
	"github.com/isaacjstriker/notris/internal/database"
)

// APIServer serves the REST API and the live game WebSocket.
type APIServer struct {
	listenAddr string
	db         *database.DB
	config     *config.Config
}

// NewAPIServer creates a new APIServer instance
func NewAPIServer(listenAddr string, db *database.DB, config *config.Config) *APIServer {
	return &APIServer{
		listenAddr: listenAddr,
		db:         db,
		config:     config,
	}
}

// Handler builds the router with every route registered.
func (s *APIServer) Handler() http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/register", s.handleRegister)
	router.HandleFunc("POST /api/login", s.handleLogin)
	router.HandleFunc("GET /api/leaderboard/{gameType}", s.handleGetLeaderboard)
	router.HandleFunc("GET /api/recent/{gameType}", s.handleGetRecentGames)
	router.HandleFunc("GET /api/stats/{gameType}", requireAuth(s, s.handleGetStats))
	router.HandleFunc("POST /api/scores", requireAuth(s, s.handleSubmitScore))
	router.HandleFunc("GET /api/palette", s.handleGetPalette)

	router.HandleFunc("GET /ws/game", s.handleGameConnection)

	if s.config.Debug {
		return logRequests(router)
	}
	return router
}

// Start runs the HTTP server until it fails.
func (s *APIServer) Start() error {
	server := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[INFO] API server listening on %s", s.listenAddr)
	return server.ListenAndServe()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[DEBUG] %s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
