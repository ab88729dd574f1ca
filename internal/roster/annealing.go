package roster

import (
	"math"

	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// Annealing explores the same single-swap neighborhood as HillClimb but
// may accept a score-decreasing swap with probability
// exp(delta / temperature), where temperature decays geometrically each
// iteration. Swaps that violate the budget are always rejected. The best
// feasible roster seen is returned, not the final walk position.
type Annealing struct {
	InitialTemp   float64 // defaults to 100
	CoolingRate   float64 // geometric decay factor in (0,1); defaults to 0.95
	MaxIterations int     // defaults to 1000
	SeedAttempts  int     // random draws used to pick the start; defaults to 100
}

// Optimize implements Strategy.
func (s Annealing) Optimize(pool []models.Candidate, params Params, rng *utils.RandSource) (*models.Roster, error) {
	if err := validate(pool, params); err != nil {
		return nil, err
	}
	temp := s.InitialTemp
	if temp <= 0 {
		temp = 100
	}
	cooling := s.CoolingRate
	if cooling <= 0 || cooling >= 1 {
		cooling = 0.95
	}
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 1000
	}
	seedAttempts := s.SeedAttempts
	if seedAttempts <= 0 {
		seedAttempts = 100
	}

	current := append([]int(nil), sampleFeasible(pool, params, rng, seedAttempts)...)
	best := append([]int(nil), current...)
	curScore, curCost := evaluate(pool, current)

	// The complement set, maintained in place as swaps are accepted.
	inRoster := make([]bool, len(pool))
	for _, i := range current {
		inRoster[i] = true
	}
	outside := make([]int, 0, len(pool)-params.TeamSize)
	for i := range pool {
		if !inRoster[i] {
			outside = append(outside, i)
		}
	}
	if len(outside) == 0 {
		// The pool is exactly one roster; nothing to search.
		return buildRoster(pool, current), nil
	}

	for iter := 0; iter < maxIter; iter++ {
		mi := rng.Intn(len(current))
		oi := rng.Intn(len(outside))
		member, swap := current[mi], outside[oi]

		newCost := curCost - pool[member].Cost + pool[swap].Cost
		if newCost <= params.Budget {
			delta := pool[swap].Score - pool[member].Score
			if delta > 0 || rng.Float64() < math.Exp(delta/temp) {
				current[mi], outside[oi] = swap, member
				curScore += delta
				curCost = newCost
				if betterRoster(pool, current, best) {
					best = append(best[:0], current...)
				}
			}
		}

		temp *= cooling
	}

	return buildRoster(pool, best), nil
}
