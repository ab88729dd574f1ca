package engine

import (
	"testing"

	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// scriptedProfile plays out a fixed sequence of server-won flags,
// ignoring the random source. Lets tests drive exact point sequences.
type scriptedProfile struct {
	name       string
	serverWins []bool
	i          *int
}

func newScripted(name string, serverWins ...bool) scriptedProfile {
	i := 0
	return scriptedProfile{name: name, serverWins: serverWins, i: &i}
}

func (p scriptedProfile) PlayerName() string { return p.name }
func (p scriptedProfile) Validate() error    { return nil }

func (p scriptedProfile) ServePoint(_ *utils.RandSource) models.PointOutcome {
	won := p.serverWins[*p.i%len(p.serverWins)]
	*p.i++
	return models.PointOutcome{ServerWon: won, FirstServe: true}
}

func dominantMatch(t *testing.T) *Match {
	t.Helper()
	m, err := NewMatch(models.MatchConfig{
		Player1:       models.PlayerSimple{Name: "Ace", ServeWinPct: 1},
		Player2:       models.PlayerSimple{Name: "Out", ServeWinPct: 0},
		SetsToWin:     2,
		Player1Serves: true,
	}, utils.NewRandSource(1))
	if err != nil {
		t.Fatalf("NewMatch error: %v", err)
	}
	return m
}

func TestPlayGameBreakPointAccounting(t *testing.T) {
	// Server wins points 1 and 3, receiver wins 2, 4, 5 and 6: the game
	// ends 2-4 and point six is the receiver's only break point.
	script := newScripted("Srv", true, false, true, false, false, false)
	m, err := NewMatch(models.MatchConfig{
		Player1:       script,
		Player2:       models.PlayerSimple{Name: "Rcv", ServeWinPct: 0.5},
		SetsToWin:     2,
		Player1Serves: true,
	}, utils.NewRandSource(1))
	if err != nil {
		t.Fatalf("NewMatch error: %v", err)
	}

	w := m.playGame(0)
	if w != 1 {
		t.Fatalf("game winner = %d, want receiver", w)
	}
	if m.lines[0].BreakPointsFaced != 1 {
		t.Fatalf("server faced %d break points, want 1", m.lines[0].BreakPointsFaced)
	}
	if m.lines[1].BreakPointsConverted != 1 {
		t.Fatalf("receiver converted %d break points, want 1", m.lines[1].BreakPointsConverted)
	}
}

func TestPlayGameDeuceNeedsTwoPointMargin(t *testing.T) {
	// Trade points to 3-3, let each side reach advantage once without
	// closing, then the server takes two straight. Neither advantage may
	// end the game; the score collapses back to deuce both times.
	script := newScripted("Srv",
		true, false, true, false, true, false, // to deuce
		true, false, // advantage server, back to deuce
		false, true, // advantage receiver, back to deuce
		true, true, // server closes with the two-point margin
	)
	m, err := NewMatch(models.MatchConfig{
		Player1:       script,
		Player2:       models.PlayerSimple{Name: "Rcv", ServeWinPct: 0.5},
		SetsToWin:     2,
		Player1Serves: true,
	}, utils.NewRandSource(1))
	if err != nil {
		t.Fatalf("NewMatch error: %v", err)
	}

	if w := m.playGame(0); w != 0 {
		t.Fatalf("game winner = %d, want server", w)
	}
	if got := *script.i; got != 12 {
		t.Fatalf("game took %d points, want 12", got)
	}
	if m.lines[0].PointsWon != 7 || m.lines[1].PointsWon != 5 {
		t.Fatalf("points %d-%d, want 7-5", m.lines[0].PointsWon, m.lines[1].PointsWon)
	}
	// Only the receiver's advantage point was a break point, and the
	// server saved it.
	if m.lines[0].BreakPointsFaced != 1 {
		t.Fatalf("server faced %d break points, want 1", m.lines[0].BreakPointsFaced)
	}
	if m.lines[1].BreakPointsConverted != 0 {
		t.Fatalf("receiver converted %d break points, want 0", m.lines[1].BreakPointsConverted)
	}
}

func TestPlayGameToLove(t *testing.T) {
	m := dominantMatch(t)
	if w := m.playGame(0); w != 0 {
		t.Fatalf("winner = %d, want server", w)
	}
	if m.lines[0].PointsWon != 4 || m.lines[1].PointsWon != 0 {
		t.Fatalf("points %d-%d, want 4-0", m.lines[0].PointsWon, m.lines[1].PointsWon)
	}
	if m.lines[0].BreakPointsFaced != 0 {
		t.Fatalf("unexpected break points in a love hold")
	}
}

func TestPlayTiebreakWinnerAndNextSetServer(t *testing.T) {
	m := dominantMatch(t)
	// Ace is due to serve the tiebreak.
	if w := m.playTiebreak(false); w != 0 {
		t.Fatalf("tiebreak winner = %d, want 0", w)
	}
	if m.lines[0].PointsWon != 7 {
		t.Fatalf("tiebreak won with %d points, want 7", m.lines[0].PointsWon)
	}
	// The first receiver opens the next set.
	if m.serving != 1 {
		t.Fatalf("next set server = %d, want 1", m.serving)
	}
}

func TestPlayTiebreakDecidingSetToTen(t *testing.T) {
	m := dominantMatch(t)
	m.cfg.FinalSetTiebreakTo10 = true

	if w := m.playTiebreak(true); w != 0 {
		t.Fatalf("tiebreak winner = %d, want 0", w)
	}
	if m.lines[0].PointsWon != 10 {
		t.Fatalf("deciding tiebreak won with %d points, want 10", m.lines[0].PointsWon)
	}

	// Outside the deciding set the flag must not change the target.
	m2 := dominantMatch(t)
	m2.cfg.FinalSetTiebreakTo10 = true
	m2.playTiebreak(false)
	if m2.lines[0].PointsWon != 7 {
		t.Fatalf("non-deciding tiebreak won with %d points, want 7", m2.lines[0].PointsWon)
	}
}
