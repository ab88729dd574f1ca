// Package bracket simulates tournament draw progression to estimate the
// points each entrant can be expected to score across a whole event.
// Pairings without detailed serve statistics are modeled with the simple
// player variant: each side's overall serve-win probability is derived
// from the gap between the two entrants' averaged seed and power ratings.
package bracket

import (
	"fmt"

	"github.com/courtpredict/tennis-core/internal/engine"
	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// Entry is one tournament entrant. Power is a subjective form rating on
// the same scale as the seed; the two are averaged when handicapping a
// pairing.
type Entry struct {
	Name  string  `json:"name" yaml:"name"`
	Seed  float64 `json:"seed" yaml:"seed"`
	Power float64 `json:"power" yaml:"power"`
}

// Config tunes the handicapping model and the simulation volume.
type Config struct {
	SetsToWin int // best-of format for every match
	Runs      int // full-draw repetitions to average over

	// Handicapping constants. Zero values select the calibrated
	// defaults below.
	BaseServeWinPct float64 // tour-average points won on serve (0.64)
	MaxSpreadPct    float64 // serve-win gap at a seeding gap of 100 (0.08)
	JitterPct       float64 // uniform noise applied per side (0.03)
}

const (
	defaultBaseServeWinPct = 0.64
	defaultMaxSpreadPct    = 0.08
	defaultJitterPct       = 0.03

	// Points credited for a walkover against an entrant missing from
	// the field: nominal winner/loser match-point totals.
	walkoverWinnerPoints = 55
	walkoverLoserPoints  = 45
)

// Simulator runs repeated draws. All randomness comes from the injected
// source, so runs are reproducible for a fixed seed.
type Simulator struct {
	cfg Config
	rng *utils.RandSource
}

// NewSimulator validates the configuration and prepares a simulator.
func NewSimulator(cfg Config, rng *utils.RandSource) (*Simulator, error) {
	if cfg.SetsToWin <= 0 {
		return nil, fmt.Errorf("%w: sets_to_win must be positive, got %d", models.ErrInvalidConfig, cfg.SetsToWin)
	}
	if cfg.Runs <= 0 {
		return nil, fmt.Errorf("%w: runs must be positive, got %d", models.ErrInvalidConfig, cfg.Runs)
	}
	if cfg.BaseServeWinPct == 0 {
		cfg.BaseServeWinPct = defaultBaseServeWinPct
	}
	if cfg.MaxSpreadPct == 0 {
		cfg.MaxSpreadPct = defaultMaxSpreadPct
	}
	if cfg.JitterPct == 0 {
		cfg.JitterPct = defaultJitterPct
	}
	if rng == nil {
		rng = utils.NewRandSource(0)
	}
	return &Simulator{cfg: cfg, rng: rng}, nil
}

// Run simulates the draw cfg.Runs times and returns each listed
// entrant's points averaged over the runs. draw is the first round as
// ordered name pairs; field maps entrant names to their ratings. Names
// missing from the field lose by walkover.
func (s *Simulator) Run(draw [][2]string, field map[string]Entry) (map[string]float64, error) {
	if len(draw) == 0 {
		return nil, fmt.Errorf("%w: draw is empty", models.ErrInvalidConfig)
	}

	// One sample per entrant per run: the points they scored across the
	// whole event that run.
	samples := make(map[string][]float64, len(field))
	for i := 0; i < s.cfg.Runs; i++ {
		for name, pts := range s.runDraw(draw, field) {
			samples[name] = append(samples[name], pts)
		}
	}

	expected := make(map[string]float64, len(samples))
	for name, pts := range samples {
		expected[name] = utils.Round(utils.Mean(pts), 1)
	}
	return expected, nil
}

// runDraw plays one full tournament and returns every listed entrant's
// points total for it, summed over the matches they played.
func (s *Simulator) runDraw(draw [][2]string, field map[string]Entry) map[string]float64 {
	totals := make(map[string]float64, len(field))
	round := draw
	for {
		winners := make([]string, 0, len(round))
		for _, pair := range round {
			winner, winnerPts, loser, loserPts := s.playPairing(pair[0], pair[1], field)
			if _, listed := field[winner]; listed {
				totals[winner] += winnerPts
			}
			if _, listed := field[loser]; listed {
				totals[loser] += loserPts
			}
			winners = append(winners, winner)
		}
		if len(winners) < 2 {
			return totals
		}
		next := make([][2]string, 0, len(winners)/2)
		for i := 0; i+1 < len(winners); i += 2 {
			next = append(next, [2]string{winners[i], winners[i+1]})
		}
		round = next
	}
}

// playPairing resolves one match. When either side is missing from the
// field the listed side advances by walkover with nominal points.
func (s *Simulator) playPairing(name1, name2 string, field map[string]Entry) (winner string, winnerPts float64, loser string, loserPts float64) {
	e1, ok1 := field[name1]
	e2, ok2 := field[name2]

	if !ok1 || !ok2 {
		if ok1 {
			return name1, walkoverWinnerPoints, name2, walkoverLoserPoints
		}
		return name2, walkoverWinnerPoints, name1, walkoverLoserPoints
	}

	p1Serve, p2Serve := s.serveWinPcts(e1, e2)
	cfg := models.MatchConfig{
		Player1:       models.PlayerSimple{Name: name1, ServeWinPct: p1Serve},
		Player2:       models.PlayerSimple{Name: name2, ServeWinPct: p2Serve},
		SetsToWin:     s.cfg.SetsToWin,
		Player1Serves: s.rng.Bool(0.5),
	}
	match, err := engine.NewMatch(cfg, s.rng)
	if err != nil {
		// serveWinPcts clamps into [0,1]; construction cannot fail.
		panic(fmt.Sprintf("bracket: match construction failed: %v", err))
	}
	res := match.Play()

	w, l := 0, 1
	if res.Winner == name2 {
		w, l = 1, 0
	}
	names := [2]string{name1, name2}
	return names[w], float64(res.Players[w].PointsWon), names[l], float64(res.Players[l].PointsWon)
}

// serveWinPcts handicaps a pairing: the serve-win gap scales with the
// difference of the averaged seed/power ratings, maxing out at
// MaxSpreadPct for a difference of 100, with uniform jitter per side.
func (s *Simulator) serveWinPcts(e1, e2 Entry) (float64, float64) {
	r1 := (e1.Seed + e1.Power) / 2
	r2 := (e2.Seed + e2.Power) / 2

	diff := r1 - r2
	if diff < 0 {
		diff = -diff
	}
	if diff > 100 {
		diff = 100
	}
	spread := diff / 100 * s.cfg.MaxSpreadPct

	better := s.cfg.BaseServeWinPct + spread/2 + s.rng.UniformFloat64(-s.cfg.JitterPct, s.cfg.JitterPct)
	worse := s.cfg.BaseServeWinPct - spread/2 + s.rng.UniformFloat64(-s.cfg.JitterPct, s.cfg.JitterPct)
	better = utils.ClampFloat64(better, 0, 1)
	worse = utils.ClampFloat64(worse, 0, 1)

	// Lower averaged rating is the stronger entrant.
	if r1 <= r2 {
		return better, worse
	}
	return worse, better
}
