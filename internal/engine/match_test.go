package engine

import (
	"reflect"
	"testing"

	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

func testConfig() models.MatchConfig {
	return models.MatchConfig{
		Player1:       models.NewPlayer("Ann", 0.65, 0.72, 0.55),
		Player2:       models.NewPlayer("Bea", 0.60, 0.70, 0.50),
		SetsToWin:     2,
		Player1Serves: true,
	}
}

func TestNewMatchRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SetsToWin = 0
	if _, err := NewMatch(cfg, utils.NewRandSource(1)); err == nil {
		t.Fatalf("expected error for sets_to_win=0")
	}
}

func TestPlayDeterministicForFixedSeed(t *testing.T) {
	run := func() *models.MatchResult {
		m, err := NewMatch(testConfig(), utils.NewRandSource(42))
		if err != nil {
			t.Fatalf("NewMatch error: %v", err)
		}
		return m.Play()
	}
	if !reflect.DeepEqual(run(), run()) {
		t.Fatalf("same seed produced different match results")
	}
}

func TestPlayWinnerTakesExactlySetsToWin(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		m, err := NewMatch(testConfig(), utils.NewRandSource(seed))
		if err != nil {
			t.Fatalf("NewMatch error: %v", err)
		}
		res := m.Play()

		w, l := 0, 1
		if res.Players[1].Name == res.Winner {
			w, l = 1, 0
		}
		if res.Players[w].SetsWon != 2 {
			t.Fatalf("seed %d: winner has %d sets, want 2", seed, res.Players[w].SetsWon)
		}
		if res.Players[l].SetsWon >= 2 {
			t.Fatalf("seed %d: loser has %d sets", seed, res.Players[l].SetsWon)
		}
	}
}

func TestPlaySetScoresAreLegal(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		m, err := NewMatch(testConfig(), utils.NewRandSource(seed))
		if err != nil {
			t.Fatalf("NewMatch error: %v", err)
		}
		res := m.Play()

		sets := len(res.Players[0].GamesPerSet)
		if sets != len(res.Players[1].GamesPerSet) {
			t.Fatalf("seed %d: players disagree on set count", seed)
		}
		if sets != res.Players[0].SetsWon+res.Players[1].SetsWon {
			t.Fatalf("seed %d: %d sets recorded, %d sets won", seed,
				sets, res.Players[0].SetsWon+res.Players[1].SetsWon)
		}

		for i := 0; i < sets; i++ {
			g1 := res.Players[0].GamesPerSet[i]
			g2 := res.Players[1].GamesPerSet[i]
			hi, lo := g1, g2
			if g2 > g1 {
				hi, lo = g2, g1
			}
			legal := (hi >= 6 && hi-lo >= 2) || (hi == 7 && (lo == 5 || lo == 6))
			if !legal {
				t.Fatalf("seed %d: illegal set score %d-%d", seed, g1, g2)
			}
		}
	}
}

func TestPlayStatisticsAreConsistent(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		m, err := NewMatch(testConfig(), utils.NewRandSource(seed))
		if err != nil {
			t.Fatalf("NewMatch error: %v", err)
		}
		res := m.Play()
		p1, p2 := res.Players[0], res.Players[1]

		// Every point is exactly one service point.
		totalPoints := p1.PointsWon + p2.PointsWon
		totalServes := p1.FirstServesPlayed + p2.FirstServesPlayed
		if totalPoints != totalServes {
			t.Fatalf("seed %d: %d points vs %d serves", seed, totalPoints, totalServes)
		}

		// Tiebreak games are the only games without a serving owner.
		totalGames := p1.GamesWon + p2.GamesWon
		serviceGames := p1.ServiceGamesPlayed + p2.ServiceGamesPlayed
		if totalGames != serviceGames+res.TiebreaksPlayed {
			t.Fatalf("seed %d: %d games, %d service games, %d tiebreaks",
				seed, totalGames, serviceGames, res.TiebreaksPlayed)
		}

		if p1.TiebreaksWon+p2.TiebreaksWon != res.TiebreaksPlayed {
			t.Fatalf("seed %d: tiebreak wins do not sum to tiebreaks played", seed)
		}

		// A conversion is a break point the opponent faced.
		if p1.BreakPointsConverted > p2.BreakPointsFaced {
			t.Fatalf("seed %d: p1 converted %d of %d break points",
				seed, p1.BreakPointsConverted, p2.BreakPointsFaced)
		}
		if p2.BreakPointsConverted > p1.BreakPointsFaced {
			t.Fatalf("seed %d: p2 converted %d of %d break points",
				seed, p2.BreakPointsConverted, p1.BreakPointsFaced)
		}

		if p1.FirstServesIn > p1.FirstServesPlayed || p1.SecondServesIn > p1.SecondServesPlayed {
			t.Fatalf("seed %d: serves in exceed serves played", seed)
		}
		if p1.DoubleFaults > p1.SecondServesPlayed {
			t.Fatalf("seed %d: double faults exceed second serves", seed)
		}
	}
}

func TestPlayDominantServerSweeps(t *testing.T) {
	cfg := models.MatchConfig{
		Player1:       models.PlayerSimple{Name: "Ace", ServeWinPct: 1},
		Player2:       models.PlayerSimple{Name: "Out", ServeWinPct: 0},
		SetsToWin:     2,
		Player1Serves: true,
	}
	m, err := NewMatch(cfg, utils.NewRandSource(3))
	if err != nil {
		t.Fatalf("NewMatch error: %v", err)
	}
	res := m.Play()

	if res.Winner != "Ace" {
		t.Fatalf("winner = %s, want Ace", res.Winner)
	}
	if res.Players[1].PointsWon != 0 {
		t.Fatalf("loser won %d points, want 0", res.Players[1].PointsWon)
	}
	if res.TiebreaksPlayed != 0 {
		t.Fatalf("expected no tiebreaks in a sweep, got %d", res.TiebreaksPlayed)
	}
	for _, g := range res.Players[0].GamesPerSet {
		if g != 6 {
			t.Fatalf("expected every set 6-0, got %d games", g)
		}
	}
}

func TestPlayBestOfFive(t *testing.T) {
	cfg := testConfig()
	cfg.SetsToWin = 3
	m, err := NewMatch(cfg, utils.NewRandSource(11))
	if err != nil {
		t.Fatalf("NewMatch error: %v", err)
	}
	res := m.Play()

	maxSets := res.Players[0].SetsWon
	if res.Players[1].SetsWon > maxSets {
		maxSets = res.Players[1].SetsWon
	}
	if maxSets != 3 {
		t.Fatalf("winner has %d sets, want 3", maxSets)
	}
	total := res.Players[0].SetsWon + res.Players[1].SetsWon
	if total < 3 || total > 5 {
		t.Fatalf("best-of-five played %d sets", total)
	}
}
