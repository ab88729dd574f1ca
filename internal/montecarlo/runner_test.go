package montecarlo

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/courtpredict/tennis-core/pkg/models"
)

func testConfig() models.MatchConfig {
	return models.MatchConfig{
		Player1:       models.NewPlayer("Ann", 0.65, 0.72, 0.55),
		Player2:       models.NewPlayer("Bea", 0.60, 0.70, 0.50),
		SetsToWin:     2,
		Player1Serves: true,
	}
}

func TestRunRejectsInvalidInput(t *testing.T) {
	r := NewRunner(2)

	if _, err := r.Run(context.Background(), testConfig(), 0, 1); !errors.Is(err, models.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero simulations, got %v", err)
	}

	cfg := testConfig()
	cfg.Player2 = nil
	if _, err := r.Run(context.Background(), cfg, 10, 1); !errors.Is(err, models.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for missing player, got %v", err)
	}
}

func TestRunWinsSumToSimulations(t *testing.T) {
	r := NewRunner(4)
	batch, err := r.Run(context.Background(), testConfig(), 1000, 7)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if batch.Simulations != 1000 {
		t.Fatalf("Simulations = %d, want 1000", batch.Simulations)
	}
	if got := batch.Players[0].Wins + batch.Players[1].Wins; got != 1000 {
		t.Fatalf("wins sum to %d, want 1000", got)
	}
	if batch.Seed != 7 {
		t.Fatalf("Seed = %d, want 7", batch.Seed)
	}

	pctSum := batch.Players[0].WinPercentage + batch.Players[1].WinPercentage
	if math.Abs(pctSum-100) > 1e-9 {
		t.Fatalf("win percentages sum to %v, want 100", pctSum)
	}
}

func TestBuildBatchComplementaryPercentages(t *testing.T) {
	// 5 and 11 wins of 16 are 31.25% and 68.75%: rounded independently
	// both halves go up and the pair sums to 100.1.
	r := NewRunner(1)
	batch := r.buildBatch(testConfig(), 16, 1, aggregate{wins: [2]int{5, 11}})

	if got := batch.Players[0].WinPercentage; got != 31.3 {
		t.Fatalf("player 1 win percentage = %v, want 31.3", got)
	}
	if got := batch.Players[1].WinPercentage; got != 68.7 {
		t.Fatalf("player 2 win percentage = %v, want 68.7", got)
	}
	pctSum := batch.Players[0].WinPercentage + batch.Players[1].WinPercentage
	if math.Abs(pctSum-100) > 1e-9 {
		t.Fatalf("win percentages sum to %v, want 100", pctSum)
	}
}

func TestRunDeterministicForFixedSeedAndWorkers(t *testing.T) {
	run := func() *models.SimulationBatch {
		r := NewRunner(3)
		batch, err := r.Run(context.Background(), testConfig(), 500, 42)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		return batch
	}
	if !reflect.DeepEqual(run(), run()) {
		t.Fatalf("same seed and worker count produced different batches")
	}
}

func TestRunFavoriteWinsMore(t *testing.T) {
	cfg := models.MatchConfig{
		Player1:   models.PlayerSimple{Name: "Fav", ServeWinPct: 0.70},
		Player2:   models.PlayerSimple{Name: "Dog", ServeWinPct: 0.60},
		SetsToWin: 2,
	}
	r := NewRunner(4)
	r.SetRandomizeServer(true)

	batch, err := r.Run(context.Background(), cfg, 2000, 9)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if batch.Players[0].Wins <= batch.Players[1].Wins {
		t.Fatalf("favorite won %d of 2000 against %d",
			batch.Players[0].Wins, batch.Players[1].Wins)
	}
}

func TestRunDominantPlayer(t *testing.T) {
	cfg := models.MatchConfig{
		Player1:       models.PlayerSimple{Name: "Ace", ServeWinPct: 1},
		Player2:       models.PlayerSimple{Name: "Out", ServeWinPct: 0},
		SetsToWin:     2,
		Player1Serves: true,
	}
	r := NewRunner(2)
	batch, err := r.Run(context.Background(), cfg, 50, 3)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if batch.Players[0].WinPercentage != 100 {
		t.Fatalf("win percentage = %v, want 100", batch.Players[0].WinPercentage)
	}
	if batch.Players[1].AvgPoints != 0 {
		t.Fatalf("loser avg points = %v, want 0", batch.Players[1].AvgPoints)
	}
	if batch.AvgTiebreaks != 0 {
		t.Fatalf("avg tiebreaks = %v, want 0", batch.AvgTiebreaks)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(2)
	if _, err := r.Run(ctx, testConfig(), 10000, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunSingleSimulation(t *testing.T) {
	r := NewRunner(8)
	batch, err := r.Run(context.Background(), testConfig(), 1, 5)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if batch.Players[0].Wins+batch.Players[1].Wins != 1 {
		t.Fatalf("expected exactly one decided match")
	}
}
