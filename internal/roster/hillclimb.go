package roster

import (
	"sort"

	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// HillClimb improves a feasible starting roster by single swaps: replace
// one member with one non-member when the swap stays within budget and
// strictly increases total score. The first improving swap in a fixed
// name-ordered enumeration is taken, so a run is deterministic given its
// starting roster. It terminates at a local optimum or the iteration cap.
type HillClimb struct {
	MaxIterations int // improvement passes; defaults to 1000
	SeedAttempts  int // random draws used to pick the start; defaults to 100
}

// Optimize implements Strategy.
func (s HillClimb) Optimize(pool []models.Candidate, params Params, rng *utils.RandSource) (*models.Roster, error) {
	if err := validate(pool, params); err != nil {
		return nil, err
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
	inRoster := make([]bool, len(pool))
	for _, i := range current {
		inRoster[i] = true
	}
	curScore, curCost := evaluate(pool, current)

	// Fixed swap-enumeration order: candidates by name.
	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return pool[order[a]].Name < pool[order[b]].Name })

	for iter := 0; iter < maxIter; iter++ {
		improved := false
	sweep:
		for mi, member := range current {
			for _, j := range order {
				if inRoster[j] {
					continue
				}
				newCost := curCost - pool[member].Cost + pool[j].Cost
				newScore := curScore - pool[member].Score + pool[j].Score
				if newCost > params.Budget || newScore <= curScore {
					continue
				}
				inRoster[member] = false
				inRoster[j] = true
				current[mi] = j
				curScore, curCost = newScore, newCost
				improved = true
				break sweep
			}
		}
		if !improved {
			break // local optimum
		}
	}

	return buildRoster(pool, current), nil
}
