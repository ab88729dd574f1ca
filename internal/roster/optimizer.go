// Package roster selects a fixed-size team of candidates maximizing
// total score under a cost budget. The problem is a cardinality-
// constrained knapsack variant, so three interchangeable heuristic
// strategies are offered instead of an exact solver: random sampling,
// hill-climbing, and simulated annealing.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// ErrInfeasibleBudget is returned when no roster of the requested size
// fits the budget.
var ErrInfeasibleBudget = errors.New("infeasible budget")

// Params are the constraints shared by all strategies.
type Params struct {
	Budget   int64 `json:"budget"`
	TeamSize int   `json:"team_size"`
}

// Strategy is one search procedure over fixed-size candidate subsets.
// Implementations draw all randomness from rng, so a caller-fixed seed
// reproduces the run.
type Strategy interface {
	Optimize(pool []models.Candidate, params Params, rng *utils.RandSource) (*models.Roster, error)
}

// validate rejects malformed input and reports infeasibility up front:
// if even the cheapest team_size candidates exceed the budget, no
// feasible roster exists.
func validate(pool []models.Candidate, params Params) error {
	if params.TeamSize <= 0 {
		return fmt.Errorf("%w: team_size must be positive, got %d", models.ErrInvalidConfig, params.TeamSize)
	}
	if params.TeamSize > len(pool) {
		return fmt.Errorf("%w: team_size %d exceeds pool size %d", models.ErrInvalidConfig, params.TeamSize, len(pool))
	}
	if params.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive, got %d", models.ErrInvalidConfig, params.Budget)
	}

	seen := make(map[string]bool, len(pool))
	for _, c := range pool {
		if c.Name == "" {
			return fmt.Errorf("%w: candidate name is required", models.ErrInvalidConfig)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate candidate: %s", models.ErrInvalidConfig, c.Name)
		}
		seen[c.Name] = true
		if c.Cost <= 0 {
			return fmt.Errorf("%w: candidate %s: cost must be positive, got %d", models.ErrInvalidConfig, c.Name, c.Cost)
		}
		if c.Score < 0 {
			return fmt.Errorf("%w: candidate %s: score must be non-negative, got %v", models.ErrInvalidConfig, c.Name, c.Score)
		}
	}

	cheapest := cheapestRoster(pool, params.TeamSize)
	if _, cost := evaluate(pool, cheapest); cost > params.Budget {
		return fmt.Errorf("%w: cheapest %d candidates cost %d, budget is %d",
			ErrInfeasibleBudget, params.TeamSize, cost, params.Budget)
	}
	return nil
}

// evaluate sums score and cost over the selected indices.
func evaluate(pool []models.Candidate, idx []int) (score float64, cost int64) {
	score = lo.SumBy(idx, func(i int) float64 { return pool[i].Score })
	cost = lo.SumBy(idx, func(i int) int64 { return pool[i].Cost })
	return score, cost
}

// cheapestRoster returns the teamSize cheapest candidates, breaking cost
// ties by name so the result is deterministic.
func cheapestRoster(pool []models.Candidate, teamSize int) []int {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ca, cb := pool[idx[a]], pool[idx[b]]
		if ca.Cost != cb.Cost {
			return ca.Cost < cb.Cost
		}
		return ca.Name < cb.Name
	})
	return idx[:teamSize]
}

// nameKey is the deterministic identity of a roster: its candidate names
// sorted and joined. Used as the final tie-breaker between rosters.
func nameKey(pool []models.Candidate, idx []int) string {
	names := lo.Map(idx, func(i int, _ int) string { return pool[i].Name })
	sort.Strings(names)
	return strings.Join(names, "|")
}

// betterRoster reports whether roster a beats roster b: higher total
// score, then lower total cost, then name order.
func betterRoster(pool []models.Candidate, a, b []int) bool {
	sa, ca := evaluate(pool, a)
	sb, cb := evaluate(pool, b)
	if sa != sb {
		return sa > sb
	}
	if ca != cb {
		return ca < cb
	}
	return nameKey(pool, a) < nameKey(pool, b)
}

// buildRoster materializes the selection, ordered by score descending
// with name ascending on equal scores.
func buildRoster(pool []models.Candidate, idx []int) *models.Roster {
	selected := lo.Map(idx, func(i int, _ int) models.Candidate { return pool[i] })
	sort.Slice(selected, func(a, b int) bool {
		if selected[a].Score != selected[b].Score {
			return selected[a].Score > selected[b].Score
		}
		return selected[a].Name < selected[b].Name
	})
	score, cost := evaluate(pool, idx)
	return &models.Roster{
		Candidates: selected,
		TotalCost:  cost,
		TotalScore: score,
	}
}

// sampleFeasible draws up to attempts random rosters and returns the
// best feasible one, falling back to the cheapest roster (feasible by
// the upfront check) when every draw went over budget.
func sampleFeasible(pool []models.Candidate, params Params, rng *utils.RandSource, attempts int) []int {
	var best []int
	for i := 0; i < attempts; i++ {
		idx := rng.Sample(len(pool), params.TeamSize)
		if _, cost := evaluate(pool, idx); cost > params.Budget {
			continue
		}
		if best == nil || betterRoster(pool, idx, best) {
			best = idx
		}
	}
	if best == nil {
		best = cheapestRoster(pool, params.TeamSize)
	}
	return best
}
