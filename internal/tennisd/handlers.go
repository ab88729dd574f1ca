package tennisd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/courtpredict/tennis-core/internal/bracket"
	"github.com/courtpredict/tennis-core/internal/roster"
	"github.com/courtpredict/tennis-core/pkg/logger"
	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// handleCreateSimulation handles POST /v1/simulations. The job starts
// immediately; the response carries its running state.
func (s *HTTPServer) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p1, err := s.resolvePlayer(req.Player1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p2, err := s.resolvePlayer(req.Player2)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	defaults := s.cfg.Simulation
	if req.SetsToWin == 0 {
		req.SetsToWin = defaults.SetsToWin
	}
	if req.Runs == 0 {
		req.Runs = defaults.Runs
	}
	if req.Workers == 0 {
		req.Workers = defaults.Workers
	}
	randomize := defaults.RandomizeServer
	if req.RandomizeServer != nil {
		randomize = *req.RandomizeServer
	}

	params := SimulationParams{
		Config: models.MatchConfig{
			Player1:              p1,
			Player2:              p2,
			SetsToWin:            req.SetsToWin,
			Player1Serves:        req.Player1Serves,
			Surface:              req.Surface,
			FinalSetTiebreakTo10: req.FinalSetTiebreakTo10,
		},
		Runs:            req.Runs,
		Seed:            req.Seed,
		Workers:         req.Workers,
		RandomizeServer: randomize,
	}

	rec, err := s.executor.Submit(params)
	if err != nil {
		if errors.Is(err, models.ErrInvalidConfig) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("simulation job accepted", "job_id", rec.Job.ID)
	s.writeJSON(w, http.StatusAccepted, jobJSON(rec))
}

// handleListSimulations handles GET /v1/simulations.
func (s *HTTPServer) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = utils.Clamp(parsed, 1, 1000)
		}
	}

	recs := s.store.List(limit)
	jobs := lo.Map(recs, func(rec JobRecord, _ int) map[string]any { return jobJSON(rec) })
	s.writeJSON(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleGetSimulation handles GET /v1/simulations/{id}.
func (s *HTTPServer) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	rec, ok := s.store.Get(jobID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "job not found: "+jobID)
		return
	}
	s.writeJSON(w, http.StatusOK, jobJSON(rec))
}

// handleCancelSimulation handles POST /v1/simulations/{id}/cancel.
func (s *HTTPServer) handleCancelSimulation(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	rec, err := s.executor.Stop(jobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrJobTerminal):
			s.writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrJobIDMissing):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("simulation job cancelled", "job_id", jobID)
	s.writeJSON(w, http.StatusOK, jobJSON(rec))
}

// handleOptimizeRoster handles POST /v1/rosters/optimize. Optimization
// is fast enough to run synchronously.
func (s *HTTPServer) handleOptimizeRoster(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	defaults := s.cfg.Optimizer
	if req.Budget == 0 {
		req.Budget = defaults.Budget
	}
	if req.TeamSize == 0 {
		req.TeamSize = defaults.TeamSize
	}
	if req.Strategy == "" {
		req.Strategy = defaults.Strategy
	}
	if req.Attempts == 0 {
		req.Attempts = defaults.Attempts
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = defaults.MaxIterations
	}
	if req.InitialTemp == 0 {
		req.InitialTemp = defaults.InitialTemp
	}
	if req.CoolingRate == 0 {
		req.CoolingRate = defaults.CoolingRate
	}

	candidates := req.Candidates
	if len(candidates) == 0 {
		candidates = s.poolCandidates()
		if len(candidates) == 0 {
			s.writeError(w, http.StatusBadRequest, "candidates are required when no priced pool is loaded")
			return
		}
	}

	strategy, err := buildStrategy(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := strategy.Optimize(candidates, roster.Params{
		Budget:   req.Budget,
		TeamSize: req.TeamSize,
	}, utils.NewRandSource(req.Seed))
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrInfeasibleBudget):
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, models.ErrInvalidConfig):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("roster optimized",
		"strategy", req.Strategy,
		"total_score", result.TotalScore,
		"total_cost", result.TotalCost)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"strategy": req.Strategy,
		"roster":   result,
	})
}

// handleSimulateBracket handles POST /v1/brackets/simulate.
func (s *HTTPServer) handleSimulateBracket(w http.ResponseWriter, r *http.Request) {
	var req bracketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.SetsToWin == 0 {
		req.SetsToWin = s.cfg.Simulation.SetsToWin
	}
	if req.Runs == 0 {
		req.Runs = s.cfg.Simulation.Runs
	}

	field := make(map[string]bracket.Entry, len(req.Entries))
	for name, e := range req.Entries {
		field[name] = bracket.Entry{Name: name, Seed: e.Seed, Power: e.Power}
	}

	sim, err := bracket.NewSimulator(bracket.Config{
		SetsToWin:       req.SetsToWin,
		Runs:            req.Runs,
		BaseServeWinPct: req.BaseServeWinPct,
		MaxSpreadPct:    req.MaxSpreadPct,
		JitterPct:       req.JitterPct,
	}, utils.NewRandSource(req.Seed))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expected, err := sim.Run(req.Draw, field)
	if err != nil {
		if errors.Is(err, models.ErrInvalidConfig) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"runs":            req.Runs,
		"expected_points": expected,
	})
}

// handleGetPool handles GET /v1/pool.
func (s *HTTPServer) handleGetPool(w http.ResponseWriter, _ *http.Request) {
	if s.pool == nil {
		s.writeError(w, http.StatusNotFound, "no pool loaded")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"pool": s.pool,
	})
}

// poolCandidates projects the loaded pool onto optimizer candidates.
// Unpriced records are simulation-only and are skipped.
func (s *HTTPServer) poolCandidates() []models.Candidate {
	if s.pool == nil {
		return nil
	}
	out := make([]models.Candidate, 0, len(s.pool.Players))
	for _, p := range s.pool.Players {
		if p.Cost <= 0 {
			continue
		}
		score := p.Score
		if score == 0 && p.Seed > 0 {
			score = roster.SeedScore(p.Seed)
		}
		out = append(out, models.Candidate{
			Name:  p.Name,
			Cost:  p.Cost,
			Score: score,
			Seed:  p.Seed,
		})
	}
	return out
}

func buildStrategy(req optimizeRequest) (roster.Strategy, error) {
	switch req.Strategy {
	case "random":
		return roster.RandomSearch{Attempts: req.Attempts}, nil
	case "hillclimb":
		return roster.HillClimb{
			MaxIterations: req.MaxIterations,
			SeedAttempts:  req.Attempts,
		}, nil
	case "annealing":
		return roster.Annealing{
			InitialTemp:   req.InitialTemp,
			CoolingRate:   req.CoolingRate,
			MaxIterations: req.MaxIterations,
			SeedAttempts:  req.Attempts,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q (must be random, hillclimb, or annealing)", models.ErrInvalidConfig, req.Strategy)
	}
}
