package engine

// playGame runs one regular game on server's serve and returns the
// winner's index. A game ends at four or more points with a two-point
// margin; tied scores past 40-40 collapse back to deuce so the score
// never grows beyond the advantage representation.
func (m *Match) playGame(server int) int {
	receiver := 1 - server
	var pts [2]int

	for {
		// A break point is any point the receiver wins the game by
		// winning: receiver on at least three points and strictly ahead.
		breakPoint := pts[receiver] >= 3 && pts[receiver] > pts[server]
		if breakPoint {
			m.lines[server].BreakPointsFaced++
		}

		w := m.playPoint(server)
		pts[w]++
		if breakPoint && w == receiver {
			m.lines[receiver].BreakPointsConverted++
		}

		if (pts[0] >= 4 || pts[1] >= 4) && absInt(pts[0]-pts[1]) >= 2 {
			break
		}
		if pts[0] == pts[1] && pts[0] > 3 {
			pts[0], pts[1] = 3, 3 // back to deuce
		}
	}

	if pts[0] > pts[1] {
		return 0
	}
	return 1
}

// playTiebreak runs the 6-6 tiebreak: first to seven points (ten in the
// deciding set when configured) with a two-point margin. Service starts
// with whoever was due to serve, then alternates after the first point
// and every two points thereafter. The player who received the first
// tiebreak point serves the opening game of the next set.
func (m *Match) playTiebreak(deciding bool) int {
	target := 7
	if deciding && m.cfg.FinalSetTiebreakTo10 {
		target = 10
	}

	server := m.serving
	nextSetServer := 1 - server
	var pts [2]int

	for {
		w := m.playPoint(server)
		pts[w]++

		if (pts[0] >= target || pts[1] >= target) && absInt(pts[0]-pts[1]) >= 2 {
			break
		}
		if (pts[0]+pts[1])%2 == 1 {
			server = 1 - server
		}
	}

	m.serving = nextSetServer
	if pts[0] > pts[1] {
		return 0
	}
	return 1
}

// playPoint plays a single point on server's serve, updates both
// players' statistics, and returns the point winner's index.
func (m *Match) playPoint(server int) int {
	out := m.players[server].ServePoint(m.rng)
	line := &m.lines[server]

	line.FirstServesPlayed++
	switch {
	case out.FirstServe:
		line.FirstServesIn++
		if out.ServerWon {
			line.FirstServesWon++
		}
	case out.DoubleFault:
		line.SecondServesPlayed++
		line.DoubleFaults++
	default:
		line.SecondServesPlayed++
		line.SecondServesIn++
		if out.ServerWon {
			line.SecondServesWon++
		}
	}

	winner := server
	if !out.ServerWon {
		winner = 1 - server
	}
	m.lines[winner].PointsWon++
	return winner
}
