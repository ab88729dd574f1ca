// Package engine implements the point-by-point tennis match simulation:
// a probabilistic state machine that turns two serve profiles into one
// MatchResult. A single match is strictly sequential; every point depends
// on the prior game and set state.
package engine

import (
	"github.com/courtpredict/tennis-core/pkg/models"
	"github.com/courtpredict/tennis-core/pkg/utils"
)

// Match owns all mutable state of one simulated match. Create one per
// simulation; a Match is not reusable after Play.
type Match struct {
	cfg             models.MatchConfig
	rng             *utils.RandSource
	players         [2]models.ServeProfile
	lines           [2]models.PlayerLine
	setsWon         [2]int
	serving         int // player serving the next game
	tiebreaksPlayed int
}

// NewMatch validates the configuration and prepares a match. A nil rng
// gets a time-seeded source.
func NewMatch(cfg models.MatchConfig, rng *utils.RandSource) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = utils.NewRandSource(0)
	}
	m := &Match{
		cfg:     cfg,
		rng:     rng,
		players: [2]models.ServeProfile{cfg.Player1, cfg.Player2},
	}
	m.lines[0].Name = cfg.Player1.PlayerName()
	m.lines[1].Name = cfg.Player2.PlayerName()
	if !cfg.Player1Serves {
		m.serving = 1
	}
	return m, nil
}

// Play simulates the match to completion and returns its result.
func (m *Match) Play() *models.MatchResult {
	for m.setsWon[0] < m.cfg.SetsToWin && m.setsWon[1] < m.cfg.SetsToWin {
		m.playSet()
	}

	winner := 0
	if m.setsWon[1] > m.setsWon[0] {
		winner = 1
	}
	m.lines[0].SetsWon = m.setsWon[0]
	m.lines[1].SetsWon = m.setsWon[1]

	return &models.MatchResult{
		Winner:          m.lines[winner].Name,
		TiebreaksPlayed: m.tiebreaksPlayed,
		Players:         m.lines,
	}
}

// playSet runs games until the set is decided: six games with a two-game
// margin, 7-5, or 7-6 via the tiebreak triggered at 6-6.
func (m *Match) playSet() {
	var games [2]int
	m.lines[0].GamesPerSet = append(m.lines[0].GamesPerSet, 0)
	m.lines[1].GamesPerSet = append(m.lines[1].GamesPerSet, 0)
	deciding := m.setsWon[0] == m.cfg.SetsToWin-1 && m.setsWon[1] == m.cfg.SetsToWin-1

	for {
		if (games[0] >= 6 || games[1] >= 6) && absInt(games[0]-games[1]) >= 2 {
			break
		}
		if games[0] == 6 && games[1] == 6 {
			w := m.playTiebreak(deciding)
			m.recordGame(w, &games)
			m.lines[w].TiebreaksWon++
			m.tiebreaksPlayed++
			break
		}

		server := m.serving
		w := m.playGame(server)
		m.recordGame(w, &games)
		m.lines[server].ServiceGamesPlayed++
		if w == server {
			m.lines[server].ServiceGamesWon++
		}
		// Server alternates each game, carrying across set boundaries.
		m.serving = 1 - server
	}

	if games[0] > games[1] {
		m.setsWon[0]++
	} else {
		m.setsWon[1]++
	}
}

func (m *Match) recordGame(winner int, games *[2]int) {
	games[winner]++
	m.lines[winner].GamesWon++
	last := len(m.lines[winner].GamesPerSet) - 1
	m.lines[winner].GamesPerSet[last]++
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
