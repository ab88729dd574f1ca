package tennisd

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/courtpredict/tennis-core/pkg/config"
	"github.com/courtpredict/tennis-core/pkg/logger"
)

// HTTPServer exposes the simulation, roster and bracket operations over
// a JSON API.
type HTTPServer struct {
	router   chi.Router
	store    *JobStore
	executor *JobExecutor
	cfg      *config.Config
	pool     *config.Pool // nil when the service runs without a pool file
}

func NewHTTPServer(store *JobStore, executor *JobExecutor, cfg *config.Config, pool *config.Pool) *HTTPServer {
	s := &HTTPServer{
		store:    store,
		executor: executor,
		cfg:      cfg,
		pool:     pool,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(rr chi.Router) {
		rr.Route("/simulations", func(rr chi.Router) {
			rr.Post("/", s.handleCreateSimulation)
			rr.Get("/", s.handleListSimulations)
			rr.Get("/{id}", s.handleGetSimulation)
			rr.Post("/{id}/cancel", s.handleCancelSimulation)
		})
		rr.Post("/rosters/optimize", s.handleOptimizeRoster)
		rr.Post("/brackets/simulate", s.handleSimulateBracket)
		rr.Get("/pool", s.handleGetPool)
	})
	s.router = r

	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}
