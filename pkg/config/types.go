package config

import (
	"github.com/courtpredict/tennis-core/pkg/models"
)

// Config is the service configuration.
type Config struct {
	LogLevel   string              `yaml:"log_level"`
	HTTPAddr   string              `yaml:"http_addr"`
	PoolPath   string              `yaml:"pool,omitempty"`
	Simulation *SimulationDefaults `yaml:"simulation,omitempty"`
	Optimizer  *OptimizerDefaults  `yaml:"optimizer,omitempty"`
}

// SimulationDefaults are applied when a simulation request leaves the
// corresponding field unset.
type SimulationDefaults struct {
	Runs            int  `yaml:"runs"`
	Workers         int  `yaml:"workers"`
	SetsToWin       int  `yaml:"sets_to_win"`
	RandomizeServer bool `yaml:"randomize_server"`
}

// OptimizerDefaults are applied when an optimization request leaves the
// corresponding field unset.
type OptimizerDefaults struct {
	Budget        int64   `yaml:"budget"`
	TeamSize      int     `yaml:"team_size"`
	Strategy      string  `yaml:"strategy"` // random, hillclimb, or annealing
	Attempts      int     `yaml:"attempts,omitempty"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
	InitialTemp   float64 `yaml:"initial_temp,omitempty"`
	CoolingRate   float64 `yaml:"cooling_rate,omitempty"`
}

// Pool is a tournament player pool: the external data the core consumes.
type Pool struct {
	Tournament string       `yaml:"tournament,omitempty" json:"tournament,omitempty"`
	Surface    string       `yaml:"surface,omitempty" json:"surface,omitempty"`
	Players    []PoolPlayer `yaml:"players" json:"players"`
}

// PoolPlayer is one pool record. Detailed serve stats are optional; a
// record without them falls back to the single serve-win probability.
type PoolPlayer struct {
	Name  string  `yaml:"name" json:"name"`
	Seed  int     `yaml:"seed,omitempty" json:"seed,omitempty"`
	Power int     `yaml:"power,omitempty" json:"power,omitempty"`
	Cost  int64   `yaml:"cost,omitempty" json:"cost,omitempty"`
	Score float64 `yaml:"score,omitempty" json:"score,omitempty"` // expected points; seed-derived when absent

	FirstServeInPct   float64 `yaml:"first_serve_in_pct,omitempty" json:"first_serve_in_pct,omitempty"`
	SecondServeInPct  float64 `yaml:"second_serve_in_pct,omitempty" json:"second_serve_in_pct,omitempty"`
	FirstServeWinPct  float64 `yaml:"first_serve_win_pct,omitempty" json:"first_serve_win_pct,omitempty"`
	SecondServeWinPct float64 `yaml:"second_serve_win_pct,omitempty" json:"second_serve_win_pct,omitempty"`
	ServeWinPct       float64 `yaml:"serve_win_pct,omitempty" json:"serve_win_pct,omitempty"`
}

// Detailed reports whether the record carries the full serve profile.
func (p PoolPlayer) Detailed() bool {
	return p.FirstServeInPct > 0
}

// Profile builds the serve profile for the match engine, preferring the
// detailed variant when its stats are present.
func (p PoolPlayer) Profile() models.ServeProfile {
	if p.Detailed() {
		second := p.SecondServeInPct
		if second == 0 {
			second = models.DefaultSecondServeInPct
		}
		return models.NewDetailedPlayer(p.Name, p.FirstServeInPct, second, p.FirstServeWinPct, p.SecondServeWinPct)
	}
	return models.PlayerSimple{Name: p.Name, ServeWinPct: p.ServeWinPct}
}

// Find returns the named player record.
func (p *Pool) Find(name string) (PoolPlayer, bool) {
	for _, pl := range p.Players {
		if pl.Name == name {
			return pl, true
		}
	}
	return PoolPlayer{}, false
}
