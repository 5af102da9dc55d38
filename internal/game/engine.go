package game

import (
	"fmt"
	"log"
)

// Ball is the only moving rigid body.
type Ball struct {
	Position Vec3 `json:"position"`
	Velocity Vec3 `json:"velocity"`
	Spin     Vec3 `json:"spin"` // rad/s about the spin axis
}

// Config is everything needed to start a match.
type Config struct {
	Match  MatchConfig `json:"match"`
	Params Params      `json:"params"`
}

// DefaultConfig is an eleven point game with standard physics.
func DefaultConfig() Config {
	return Config{Match: DefaultMatchConfig(), Params: DefaultParams()}
}

// StepResult is the outcome of one Step.
type StepResult struct {
	Events []ContactEvent
	Point  *PointResult
	Winner int
	Won    bool
}

// Engine advances one match in fixed timesteps. It is not safe for
// concurrent use; Runner owns it when the match is hosted.
type Engine struct {
	table   Table
	params  Params
	match   *Match
	paddles [2]Paddle

	ball         Ball
	prevPosition Vec3
	angle        float64 // x-y angle of the velocity after the last table check

	events []ContactEvent
}

// NewEngine validates cfg and returns an engine with the ball at home and
// both paddles parked behind their ends.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Match.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	t := StandardTable()
	e := &Engine{
		table:  t,
		params: cfg.Params,
		match:  newMatch(cfg.Match),
	}
	e.paddles[0] = defaultPaddle(t, 0)
	e.paddles[1] = defaultPaddle(t, 1)
	e.ball.Position = t.HomePosition()
	e.prevPosition = e.ball.Position
	return e, nil
}

// Advance moves the simulation forward by one Timestep. Nothing happens
// while the ball is out of play.
func (e *Engine) Advance() {
	e.events = e.events[:0]
	if !e.match.inPlay {
		return
	}

	e.resolveContacts()
	e.prevPosition = e.ball.Position

	b := &e.ball
	lift := MagnusForce(e.params, b.Velocity, b.Spin).Mul(Timestep)
	drag := DragForce(e.params, b.Velocity)
	accel := Vec3{0, -e.params.Gravity, 0}.Add(lift.Add(drag).Mul(1 / BallMass))

	b.Position = b.Position.Add(b.Velocity.Mul(Timestep))
	b.Velocity = b.Velocity.Add(accel.Mul(Timestep))
}

// UpdatePaddle replaces a player's paddle. The normal is renormalised after
// validation. On error the previous paddle is kept.
func (e *Engine) UpdatePaddle(player int, normal, position, velocity Vec3) error {
	if err := ValidatePaddle(player, normal, position, velocity); err != nil {
		return fmt.Errorf("update paddle: %w", err)
	}
	e.paddles[player] = newPaddle(player, normalize(normal), position, velocity)
	return nil
}

// Serve puts the ball in the server's hand and tosses it.
func (e *Engine) Serve() error {
	switch {
	case e.match.status == StatusMatchWon:
		return ErrMatchOver
	case e.match.inPlay:
		return ErrBallInPlay
	}

	server := e.match.Server()
	e.ball = Ball{
		Position: e.table.ServePosition(server),
		Velocity: Vec3{0, ServeLaunchSpeed, 0},
	}
	e.prevPosition = e.ball.Position
	e.angle = planeAngle(e.ball.Velocity)
	e.events = e.events[:0]
	e.match.beginServe()

	log.Printf("[MATCH] Player %d serving at %d-%d", server, e.match.score[0], e.match.score[1])
	return nil
}

// CheckPoint settles the rally if it is over. The ball goes home and the
// serve rotates as needed.
func (e *Engine) CheckPoint() (PointResult, bool) {
	winner, reason, over := e.match.judge(e.ball.Position[1])
	if !over {
		return PointResult{}, false
	}
	res := e.match.awardPoint(winner, reason)
	e.ball = Ball{Position: e.table.HomePosition()}
	e.prevPosition = e.ball.Position
	return res, true
}

// CheckWin reports the match winner, if there is one yet.
func (e *Engine) CheckWin() (int, bool) {
	return e.match.CheckWin()
}

// Step runs one Advance and settles scoring.
func (e *Engine) Step() StepResult {
	e.Advance()
	res := StepResult{Events: e.Events()}
	if p, ok := e.CheckPoint(); ok {
		res.Point = &p
	}
	res.Winner, res.Won = e.CheckWin()
	return res
}

func (e *Engine) Ball() Ball                { return e.ball }
func (e *Engine) Table() Table              { return e.table }
func (e *Engine) Params() Params            { return e.params }
func (e *Engine) Score() [2]int             { return e.match.score }
func (e *Engine) Status() MatchStatus       { return e.match.status }
func (e *Engine) Server() int               { return e.match.Server() }
func (e *Engine) InPlay() bool              { return e.match.inPlay }
func (e *Engine) Paddle(i int) Paddle       { return e.paddles[i] }
func (e *Engine) PaddleEdges(i int) [2]Vec3 { return e.paddles[i].Edges }

// Events returns the contacts resolved by the last Advance.
func (e *Engine) Events() []ContactEvent {
	out := make([]ContactEvent, len(e.events))
	copy(out, e.events)
	return out
}

func (e *Engine) record(ev ContactEvent) {
	e.events = append(e.events, ev)
}
