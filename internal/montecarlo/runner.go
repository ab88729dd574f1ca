// Package montecarlo runs repeated independent match simulations for a
// fixed pairing and aggregates the outcomes into a SimulationBatch.
package montecarlo

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/courtpredict/tennis-core/internal/engine"
	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// Runner executes simulation batches. Trials are mutually independent
// and fan out across workers; each worker owns a random stream derived
// from the batch seed, so results are reproducible for a fixed seed and
// worker count.
type Runner struct {
	workers         int
	randomizeServer bool
}

// NewRunner creates a runner with the given parallelism. Non-positive
// workers selects the number of CPUs.
func NewRunner(workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{workers: workers}
}

// SetRandomizeServer draws the first server uniformly per trial instead
// of using the configured one.
func (r *Runner) SetRandomizeServer(enabled bool) {
	r.randomizeServer = enabled
}

// aggregate is one worker's running totals. Sums are kept in float64 so
// large batches cannot overflow intermediate counts.
type aggregate struct {
	wins      [2]int
	points    [2]float64
	games     [2]float64
	sets      [2]float64
	dfaults   [2]float64
	tiebreaks float64
}

func (a *aggregate) add(b aggregate) {
	for i := 0; i < 2; i++ {
		a.wins[i] += b.wins[i]
		a.points[i] += b.points[i]
		a.games[i] += b.games[i]
		a.sets[i] += b.sets[i]
		a.dfaults[i] += b.dfaults[i]
	}
	a.tiebreaks += b.tiebreaks
}

// Run simulates cfg n times and returns the aggregated batch. No match
// results are retained; each trial folds into the running totals. The
// context is checked between trials, so cancellation takes effect at
// match granularity.
func (r *Runner) Run(ctx context.Context, cfg models.MatchConfig, n int, seed int64) (*models.SimulationBatch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: simulations must be >= 1, got %d", models.ErrInvalidConfig, n)
	}

	base := utils.NewRandSource(seed)
	workers := r.workers
	if workers > n {
		workers = n
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total aggregate
		runErr error
	)

	for w := 0; w < workers; w++ {
		count := n / workers
		if w < n%workers {
			count++
		}

		wg.Add(1)
		go func(stream, count int) {
			defer wg.Done()
			rng := base.NewStream(stream)

			var agg aggregate
			for i := 0; i < count; i++ {
				select {
				case <-ctx.Done():
					mu.Lock()
					if runErr == nil {
						runErr = ctx.Err()
					}
					mu.Unlock()
					return
				default:
				}
				r.runTrial(cfg, rng, &agg)
			}

			mu.Lock()
			total.add(agg)
			mu.Unlock()
		}(w, count)
	}
	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}
	return r.buildBatch(cfg, n, base.Seed(), total), nil
}

func (r *Runner) runTrial(cfg models.MatchConfig, rng *utils.RandSource, agg *aggregate) {
	if r.randomizeServer {
		cfg.Player1Serves = rng.Bool(0.5)
	}

	// cfg was validated up front; construction cannot fail here.
	match, err := engine.NewMatch(cfg, rng)
	if err != nil {
		panic(fmt.Sprintf("montecarlo: match construction failed after validation: %v", err))
	}
	res := match.Play()

	winner := 0
	if res.Winner == res.Players[1].Name {
		winner = 1
	}
	agg.wins[winner]++
	agg.tiebreaks += float64(res.TiebreaksPlayed)
	for i := 0; i < 2; i++ {
		agg.points[i] += float64(res.Players[i].PointsWon)
		agg.games[i] += float64(res.Players[i].GamesWon)
		agg.sets[i] += float64(res.Players[i].SetsWon)
		agg.dfaults[i] += float64(res.Players[i].DoubleFaults)
	}
}

func (r *Runner) buildBatch(cfg models.MatchConfig, n int, seed int64, total aggregate) *models.SimulationBatch {
	names := [2]string{cfg.Player1.PlayerName(), cfg.Player2.PlayerName()}
	fn := float64(n)

	batch := &models.SimulationBatch{
		Simulations:  n,
		Seed:         seed,
		AvgTiebreaks: utils.Round(total.tiebreaks/fn, 1),
	}
	// Player 2's percentage is the complement of player 1's rounded
	// value; rounding the two shares independently lets complementary
	// halves both round up and the pair drift off 100.
	p1Pct := utils.Round(float64(total.wins[0])/fn*100, 1)
	pcts := [2]float64{p1Pct, utils.Round(100-p1Pct, 1)}
	for i := 0; i < 2; i++ {
		batch.Players[i] = models.BatchLine{
			Name:            names[i],
			Wins:            total.wins[i],
			WinPercentage:   pcts[i],
			AvgPoints:       utils.Round(total.points[i]/fn, 1),
			AvgGames:        utils.Round(total.games[i]/fn, 1),
			AvgSets:         utils.Round(total.sets[i]/fn, 1),
			AvgDoubleFaults: utils.Round(total.dfaults[i]/fn, 1),
		}
	}
	return batch
}
