package tennisd

import (
	"fmt"

	"github.com/courtpredict/tennis-core/pkg/config"
	"github.com/courtpredict/tennis-core/pkg/models"
)

// playerSpec is the wire form of one side of a pairing. A spec carrying
// only a name is resolved against the loaded pool.
type playerSpec struct {
	Name              string  `json:"name"`
	FirstServeInPct   float64 `json:"first_serve_in_pct,omitempty"`
	SecondServeInPct  float64 `json:"second_serve_in_pct,omitempty"`
	FirstServeWinPct  float64 `json:"first_serve_win_pct,omitempty"`
	SecondServeWinPct float64 `json:"second_serve_win_pct,omitempty"`
	ServeWinPct       float64 `json:"serve_win_pct,omitempty"`
}

func (p playerSpec) hasStats() bool {
	return p.FirstServeInPct > 0 || p.ServeWinPct > 0
}

type simulationRequest struct {
	Player1              *playerSpec `json:"player1"`
	Player2              *playerSpec `json:"player2"`
	SetsToWin            int         `json:"sets_to_win,omitempty"`
	Runs                 int         `json:"runs,omitempty"`
	Workers              int         `json:"workers,omitempty"`
	Seed                 int64       `json:"seed,omitempty"`
	RandomizeServer      *bool       `json:"randomize_server,omitempty"`
	Player1Serves        bool        `json:"player1_serves,omitempty"`
	Surface              string      `json:"surface,omitempty"`
	FinalSetTiebreakTo10 bool        `json:"final_set_tiebreak_to_10,omitempty"`
}

type optimizeRequest struct {
	Budget        int64              `json:"budget"`
	TeamSize      int                `json:"team_size"`
	Strategy      string             `json:"strategy,omitempty"`
	Seed          int64              `json:"seed,omitempty"`
	Candidates    []models.Candidate `json:"candidates,omitempty"` // falls back to the pool
	Attempts      int                `json:"attempts,omitempty"`
	MaxIterations int                `json:"max_iterations,omitempty"`
	InitialTemp   float64            `json:"initial_temp,omitempty"`
	CoolingRate   float64            `json:"cooling_rate,omitempty"`
}

type bracketRequest struct {
	Draw            [][2]string             `json:"draw"`
	Entries         map[string]bracketEntry `json:"entries"`
	SetsToWin       int                     `json:"sets_to_win,omitempty"`
	Runs            int                     `json:"runs,omitempty"`
	Seed            int64                   `json:"seed,omitempty"`
	BaseServeWinPct float64                 `json:"base_serve_win_pct,omitempty"`
	MaxSpreadPct    float64                 `json:"max_spread_pct,omitempty"`
	JitterPct       float64                 `json:"jitter_pct,omitempty"`
}

type bracketEntry struct {
	Seed  float64 `json:"seed"`
	Power float64 `json:"power"`
}

// resolvePlayer turns a wire spec into a serve profile, consulting the
// pool when the request carries a name without stats.
func (s *HTTPServer) resolvePlayer(spec *playerSpec) (models.ServeProfile, error) {
	if spec == nil || spec.Name == "" {
		return nil, fmt.Errorf("%w: player name is required", models.ErrInvalidConfig)
	}
	if !spec.hasStats() {
		if s.pool == nil {
			return nil, fmt.Errorf("%w: player %s has no serve stats and no pool is loaded", models.ErrInvalidConfig, spec.Name)
		}
		rec, ok := s.pool.Find(spec.Name)
		if !ok {
			return nil, fmt.Errorf("%w: player %s not found in pool", models.ErrInvalidConfig, spec.Name)
		}
		return rec.Profile(), nil
	}
	rec := config.PoolPlayer{
		Name:              spec.Name,
		FirstServeInPct:   spec.FirstServeInPct,
		SecondServeInPct:  spec.SecondServeInPct,
		FirstServeWinPct:  spec.FirstServeWinPct,
		SecondServeWinPct: spec.SecondServeWinPct,
		ServeWinPct:       spec.ServeWinPct,
	}
	return rec.Profile(), nil
}

func jobJSON(rec JobRecord) map[string]any {
	out := map[string]any{
		"job": rec.Job,
	}
	if rec.Result != nil {
		out["result"] = rec.Result
	}
	return out
}
