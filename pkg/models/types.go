package models

import (
	"errors"
	"fmt"

	"github.com/courtpredict/tennis-core/pkg/utils"
)

// ErrInvalidConfig is wrapped by every input-validation failure in the
// core. Callers match it with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultSecondServeInPct is used when a player is built from the three
// basic probabilities without a measured second-serve-in rate.
const DefaultSecondServeInPct = 0.90

// PointOutcome describes how a single service point was resolved.
type PointOutcome struct {
	ServerWon   bool
	FirstServe  bool // resolved on the first serve
	DoubleFault bool // second serve missed; implies !ServerWon
}

// ServeProfile is the capability the match engine depends on: a named
// competitor that can play one service point. Player and PlayerSimple
// are the two variants.
type ServeProfile interface {
	PlayerName() string
	Validate() error
	// ServePoint resolves a single point on this player's serve using
	// draws from rng.
	ServePoint(rng *utils.RandSource) PointOutcome
}

// Player is the detailed statistical profile of a competitor. Immutable
// once constructed.
type Player struct {
	Name              string  `json:"name" yaml:"name"`
	FirstServeInPct   float64 `json:"first_serve_in_pct" yaml:"first_serve_in_pct"`
	SecondServeInPct  float64 `json:"second_serve_in_pct" yaml:"second_serve_in_pct"`
	FirstServeWinPct  float64 `json:"first_serve_win_pct" yaml:"first_serve_win_pct"`
	SecondServeWinPct float64 `json:"second_serve_win_pct" yaml:"second_serve_win_pct"`
}

// NewPlayer builds a detailed player from the three basic probabilities,
// using DefaultSecondServeInPct for the second-serve-in rate.
func NewPlayer(name string, firstServeIn, firstServeWin, secondServeWin float64) Player {
	return Player{
		Name:              name,
		FirstServeInPct:   firstServeIn,
		SecondServeInPct:  DefaultSecondServeInPct,
		FirstServeWinPct:  firstServeWin,
		SecondServeWinPct: secondServeWin,
	}
}

// NewDetailedPlayer builds a player with an explicit second-serve-in rate.
func NewDetailedPlayer(name string, firstServeIn, secondServeIn, firstServeWin, secondServeWin float64) Player {
	return Player{
		Name:              name,
		FirstServeInPct:   firstServeIn,
		SecondServeInPct:  secondServeIn,
		FirstServeWinPct:  firstServeWin,
		SecondServeWinPct: secondServeWin,
	}
}

// PlayerName implements ServeProfile.
func (p Player) PlayerName() string { return p.Name }

// Validate implements ServeProfile.
func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidConfig)
	}
	for _, pr := range []struct {
		field string
		value float64
	}{
		{"first_serve_in_pct", p.FirstServeInPct},
		{"second_serve_in_pct", p.SecondServeInPct},
		{"first_serve_win_pct", p.FirstServeWinPct},
		{"second_serve_win_pct", p.SecondServeWinPct},
	} {
		if pr.value < 0 || pr.value > 1 {
			return fmt.Errorf("%w: %s: %s must be in [0,1], got %v", ErrInvalidConfig, p.Name, pr.field, pr.value)
		}
	}
	return nil
}

// ServePoint implements ServeProfile. The first draw decides whether the
// first serve lands in; the matching win probability then decides the
// point. A missed second serve is a double fault.
func (p Player) ServePoint(rng *utils.RandSource) PointOutcome {
	if rng.Bool(p.FirstServeInPct) {
		return PointOutcome{
			ServerWon:  rng.Bool(p.FirstServeWinPct),
			FirstServe: true,
		}
	}
	if rng.Bool(p.SecondServeInPct) {
		return PointOutcome{ServerWon: rng.Bool(p.SecondServeWinPct)}
	}
	return PointOutcome{DoubleFault: true}
}

// PlayerSimple is the degenerate profile used when detailed serve stats
// are unavailable: a single overall probability of winning a point on
// serve.
type PlayerSimple struct {
	Name        string  `json:"name" yaml:"name"`
	ServeWinPct float64 `json:"serve_win_pct" yaml:"serve_win_pct"`
}

// PlayerName implements ServeProfile.
func (p PlayerSimple) PlayerName() string { return p.Name }

// Validate implements ServeProfile.
func (p PlayerSimple) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidConfig)
	}
	if p.ServeWinPct < 0 || p.ServeWinPct > 1 {
		return fmt.Errorf("%w: %s: serve_win_pct must be in [0,1], got %v", ErrInvalidConfig, p.Name, p.ServeWinPct)
	}
	return nil
}

// ServePoint implements ServeProfile. The single probability is applied
// directly, with no first/second-serve branch and no double faults.
func (p PlayerSimple) ServePoint(rng *utils.RandSource) PointOutcome {
	return PointOutcome{
		ServerWon:  rng.Bool(p.ServeWinPct),
		FirstServe: true,
	}
}

// MatchConfig describes a single match to simulate.
type MatchConfig struct {
	Player1       ServeProfile
	Player2       ServeProfile
	SetsToWin     int    // best-of format: 2 for best-of-3, 3 for best-of-5
	Player1Serves bool
	Surface       string // carried for context; does not alter engine thresholds
	// FinalSetTiebreakTo10 plays the deciding set's tiebreak to 10
	// points instead of 7.
	FinalSetTiebreakTo10 bool
}

// Validate checks the configuration before any simulation begins.
func (c MatchConfig) Validate() error {
	if c.Player1 == nil || c.Player2 == nil {
		return fmt.Errorf("%w: two players are required", ErrInvalidConfig)
	}
	if err := c.Player1.Validate(); err != nil {
		return err
	}
	if err := c.Player2.Validate(); err != nil {
		return err
	}
	if c.Player1.PlayerName() == c.Player2.PlayerName() {
		return fmt.Errorf("%w: players must have distinct names", ErrInvalidConfig)
	}
	if c.SetsToWin <= 0 {
		return fmt.Errorf("%w: sets_to_win must be positive, got %d", ErrInvalidConfig, c.SetsToWin)
	}
	return nil
}

// PlayerLine holds one player's accumulated statistics for a match.
type PlayerLine struct {
	Name                 string `json:"name"`
	SetsWon              int    `json:"sets_won"`
	GamesWon             int    `json:"games_won"`
	PointsWon            int    `json:"points_won"`
	ServiceGamesWon      int    `json:"service_games_won"`
	ServiceGamesPlayed   int    `json:"service_games_played"`
	TiebreaksWon         int    `json:"tiebreaks_won"`
	FirstServesPlayed    int    `json:"first_serves_played"`
	FirstServesIn        int    `json:"first_serves_in"`
	FirstServesWon       int    `json:"first_serves_won"`
	SecondServesPlayed   int    `json:"second_serves_played"`
	SecondServesIn       int    `json:"second_serves_in"`
	SecondServesWon      int    `json:"second_serves_won"`
	DoubleFaults         int    `json:"double_faults"`
	BreakPointsFaced     int    `json:"break_points_faced"`
	BreakPointsConverted int    `json:"break_points_converted"`
	GamesPerSet          []int  `json:"games_per_set"`
}

// MatchResult is the terminal record of one simulated match. Immutable
// after creation.
type MatchResult struct {
	Winner          string        `json:"winner"`
	TiebreaksPlayed int           `json:"tiebreaks_played"`
	Players         [2]PlayerLine `json:"players"`
}

// BatchLine aggregates one player's outcomes across a simulation batch.
type BatchLine struct {
	Name            string  `json:"name"`
	Wins            int     `json:"wins"`
	WinPercentage   float64 `json:"win_percentage"`
	AvgPoints       float64 `json:"avg_points"`
	AvgGames        float64 `json:"avg_games"`
	AvgSets         float64 `json:"avg_sets"`
	AvgDoubleFaults float64 `json:"avg_double_faults"`
}

// SimulationBatch aggregates N match results for one pairing.
type SimulationBatch struct {
	Simulations  int          `json:"simulations"`
	Seed         int64        `json:"seed"`
	Players      [2]BatchLine `json:"players"`
	AvgTiebreaks float64      `json:"avg_tiebreaks"`
}

// Candidate is one optimizer input: a named player with a roster cost
// and an expected-contribution score.
type Candidate struct {
	Name  string  `json:"name" yaml:"name"`
	Cost  int64   `json:"cost" yaml:"cost"`
	Score float64 `json:"score" yaml:"score"`
	Seed  int     `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Roster is a fixed-size selection of distinct candidates whose summed
// cost fits the budget.
type Roster struct {
	Candidates []Candidate `json:"candidates"`
	TotalCost  int64       `json:"total_cost"`
	TotalScore float64     `json:"total_score"`
}

// JobStatus represents the status of an asynchronous simulation job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// Job is the service-layer record of one batch-simulation request.
type Job struct {
	ID              string    `json:"id"`
	Status          JobStatus `json:"status"`
	CreatedAtUnixMs int64     `json:"created_at_unix_ms"`
	StartedAtUnixMs int64     `json:"started_at_unix_ms,omitempty"`
	EndedAtUnixMs   int64     `json:"ended_at_unix_ms,omitempty"`
	Error           string    `json:"error,omitempty"`
}
