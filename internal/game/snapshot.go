package game

import "time"

// Snapshot is the renderer-facing view of the match after a frame.
type Snapshot struct {
	Ball     BallView       `json:"ball"`
	Paddles  [2]PaddleView  `json:"paddles"`
	Table    Table          `json:"table"`
	Score    [2]int         `json:"score"`
	Server   int            `json:"server"`
	Status   MatchStatus    `json:"status"`
	Winner   *int           `json:"winner,omitempty"`
	Rally    RallyStats     `json:"rally"`
	Contacts []ContactEvent `json:"contacts,omitempty"`
	Tick     uint64         `json:"tick"`
}

type BallView struct {
	Position Vec3    `json:"position"`
	Radius   float64 `json:"radius"`
	Spin     Vec3    `json:"spin"`
	SpinRate float64 `json:"spin_rate"` // |spin|, rad/s
}

type PaddleView struct {
	Player   int     `json:"player"`
	Normal   Vec3    `json:"normal"`
	Position Vec3    `json:"position"`
	Edges    [2]Vec3 `json:"edges"`
}

type RallyStats struct {
	Bounces    int `json:"bounces"`
	Hits       int `json:"hits"`
	LastHitter int `json:"last_hitter"` // -1 before the first hit
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Ball: BallView{
			Position: e.ball.Position,
			Radius:   BallRadius,
			Spin:     e.ball.Spin,
			SpinRate: e.ball.Spin.Len(),
		},
		Table:  e.table,
		Score:  e.match.score,
		Server: e.match.Server(),
		Status: e.match.status,
		Rally: RallyStats{
			Bounces:    e.match.rallyBounces,
			Hits:       e.match.rallyHits,
			LastHitter: e.match.lastHitter,
		},
	}
	for i, p := range e.paddles {
		s.Paddles[i] = PaddleView{
			Player:   p.Player,
			Normal:   p.Normal,
			Position: p.Position,
			Edges:    p.Edges,
		}
	}
	if w, ok := e.CheckWin(); ok {
		s.Winner = &w
	}
	return s
}

// MatchEventType labels events published outside the process.
type MatchEventType string

const (
	EventServe    MatchEventType = "serve"
	EventPoint    MatchEventType = "point"
	EventMatchWon MatchEventType = "match_won"
)

// MatchEvent is a scoreboard notification.
type MatchEvent struct {
	Type      MatchEventType `json:"type"`
	MatchID   string         `json:"match_id"`
	Player    int            `json:"player"` // server for serve events, winner otherwise
	Reason    PointReason    `json:"reason,omitempty"`
	Score     [2]int         `json:"score"`
	Timestamp time.Time      `json:"timestamp"`
}
