package roster

import (
	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// DefaultAttempts bounds a random search when the caller does not.
const DefaultAttempts = 10000

// RandomSearch repeatedly draws a uniformly random roster of the
// requested size and keeps the best feasible one seen. It is the
// baseline strategy and the seeding block for the local searches.
type RandomSearch struct {
	Attempts int // draw cap; DefaultAttempts when non-positive
}

// Optimize implements Strategy.
func (s RandomSearch) Optimize(pool []models.Candidate, params Params, rng *utils.RandSource) (*models.Roster, error) {
	if err := validate(pool, params); err != nil {
		return nil, err
	}
	attempts := s.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	best := sampleFeasible(pool, params, rng, attempts)
	return buildRoster(pool, best), nil
}
