package game

import (
	"fmt"
	"log"
)

// MatchConfig is fixed when the match starts.
type MatchConfig struct {
	WinThreshold   int `json:"win_threshold"`
	ServeIncrement int `json:"serve_increment"`
}

// DefaultMatchConfig is a standard game to eleven, two serves each.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{WinThreshold: 11, ServeIncrement: 2}
}

// Validate checks the thresholds are positive.
func (c MatchConfig) Validate() error {
	if c.WinThreshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWinThreshold, c.WinThreshold)
	}
	if c.ServeIncrement < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidServeIncrement, c.ServeIncrement)
	}
	return nil
}

// PointResult describes a settled rally.
type PointResult struct {
	Winner int         `json:"winner"`
	Reason PointReason `json:"reason"`
	Score  [2]int      `json:"score"`
	Server int         `json:"server"` // who serves next
}

// Match is the scoring state machine of one game.
type Match struct {
	config MatchConfig
	score  [2]int

	player1Serving bool

	// bounceCount sums +1 for every bounce on player 0's half and -1 for
	// player 1's half since the serve.
	bounceCount    int
	currentBounce  int // bounceCount at the last net graze
	lastBounceSide int // -1 before the first bounce

	rallyBounces int
	rallyHits    int
	lastHitter   int

	inPlay bool
	status MatchStatus
}

func newMatch(cfg MatchConfig) *Match {
	return &Match{
		config:         cfg,
		currentBounce:  noBounce,
		lastBounceSide: -1,
		lastHitter:     -1,
		status:         StatusServing,
	}
}

// Server returns the player who serves the next point.
func (m *Match) Server() int {
	if m.player1Serving {
		return 1
	}
	return 0
}

func (m *Match) serverCoefficient() int {
	if m.player1Serving {
		return -1
	}
	return 1
}

func (m *Match) beginServe() {
	m.bounceCount = 0
	m.currentBounce = noBounce
	m.lastBounceSide = -1
	m.rallyBounces = 0
	m.rallyHits = 0
	m.lastHitter = -1
	m.inPlay = true
	m.status = StatusInPlay
}

func (m *Match) recordBounce(coefficient, side int) {
	m.bounceCount += coefficient
	m.lastBounceSide = side
	m.rallyBounces++
}

func (m *Match) recordHit(player int) {
	m.rallyHits++
	m.lastHitter = player
}

// judge decides whether the rally is over. ballY is the ball's height.
func (m *Match) judge(ballY float64) (winner int, reason PointReason, over bool) {
	if !m.inPlay {
		return 0, "", false
	}
	server := m.Server()
	receiver := 1 - server

	c := m.bounceCount * m.serverCoefficient()
	switch {
	case c >= 2:
		return receiver, ReasonServerDoubleBounce, true
	case c <= -1:
		return server, ReasonReceiverDoubleBounce, true
	case ballY < 0:
		if m.lastBounceSide < 0 {
			return receiver, ReasonOutOfPlay, true
		}
		return 1 - m.lastBounceSide, ReasonOutOfPlay, true
	}
	return 0, "", false
}

func (m *Match) awardPoint(winner int, reason PointReason) PointResult {
	m.score[winner]++
	m.inPlay = false

	total := m.score[0] + m.score[1]
	if total%m.config.ServeIncrement == 0 {
		m.player1Serving = !m.player1Serving
	}

	if w, ok := m.CheckWin(); ok {
		m.status = StatusMatchWon
		log.Printf("[MATCH] Player %d wins %d-%d", w, m.score[w], m.score[1-w])
	} else {
		m.status = StatusPointScored
		log.Printf("[MATCH] Point to player %d (%s), score %d-%d", winner, reason, m.score[0], m.score[1])
	}

	return PointResult{
		Winner: winner,
		Reason: reason,
		Score:  m.score,
		Server: m.Server(),
	}
}

// CheckWin reports the winner once a player has reached the threshold with
// a two point lead.
func (m *Match) CheckWin() (int, bool) {
	s0, s1 := m.score[0], m.score[1]
	switch {
	case s0 >= m.config.WinThreshold && s0-s1 >= 2:
		return 0, true
	case s1 >= m.config.WinThreshold && s1-s0 >= 2:
		return 1, true
	}
	return 0, false
}

func (m *Match) Score() [2]int       { return m.score }
func (m *Match) Status() MatchStatus { return m.status }
func (m *Match) InPlay() bool        { return m.inPlay }
func (m *Match) Config() MatchConfig { return m.config }
