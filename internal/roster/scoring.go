package roster

import (
	"context"

	"github.com/courtpredict/tennis-core/internal/montecarlo"
	"github.com/courtpredict/tennis-core/pkg/models"
)

// SeedScore converts a tournament seed into a candidate score: better
// (lower) seeds are worth more, floored so unseeded entrants still score.
func SeedScore(seed int) float64 {
	pts := 129 - seed
	if pts < 1 {
		pts = 1
	}
	return float64(pts) * 10
}

// ExpectedPoints estimates a candidate's score as the points they win
// per match against a reference opponent, averaged over n simulations.
// This is the optional coupling between the optimizer and the batch
// runner; callers that lack serve statistics use SeedScore instead.
func ExpectedPoints(ctx context.Context, runner *montecarlo.Runner, player, opponent models.ServeProfile, setsToWin, n int, seed int64) (float64, error) {
	cfg := models.MatchConfig{
		Player1:       player,
		Player2:       opponent,
		SetsToWin:     setsToWin,
		Player1Serves: true,
	}
	batch, err := runner.Run(ctx, cfg, n, seed)
	if err != nil {
		return 0, err
	}
	return batch.Players[0].AvgPoints, nil
}
