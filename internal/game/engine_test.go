package game

import (
	"errors"
	"math"
	"testing"
)

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Match.WinThreshold = 0
	if _, err := NewEngine(cfg); !errors.Is(err, ErrInvalidWinThreshold) {
		t.Errorf("err = %v, want ErrInvalidWinThreshold", err)
	}

	cfg = DefaultConfig()
	cfg.Params.PaddleDamping = 1
	if _, err := NewEngine(cfg); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("err = %v, want ErrInvalidParams", err)
	}
}

func TestNewEngineInitialState(t *testing.T) {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if e.Status() != StatusServing || e.InPlay() || e.Server() != 0 {
		t.Errorf("status=%s inPlay=%v server=%d", e.Status(), e.InPlay(), e.Server())
	}
	if e.Ball().Position != e.Table().HomePosition() {
		t.Errorf("ball not at home: %v", e.Ball().Position)
	}
	if e.Paddle(0).Position[0] >= e.Table().Front || e.Paddle(1).Position[0] <= e.Table().Back() {
		t.Error("default paddles are not behind the table ends")
	}
}

func TestAdvanceIdleWhileNotInPlay(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	before := e.Ball()
	for i := 0; i < 100; i++ {
		e.Advance()
	}
	if e.Ball() != before {
		t.Errorf("ball moved while not in play: %v -> %v", before, e.Ball())
	}
}

func TestServe(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	if err := e.Serve(); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	b := e.Ball()
	if b.Position != e.Table().ServePosition(0) {
		t.Errorf("serve position = %v", b.Position)
	}
	if b.Velocity != (Vec3{0, ServeLaunchSpeed, 0}) || b.Spin != (Vec3{}) {
		t.Errorf("serve toss v=%v spin=%v", b.Velocity, b.Spin)
	}
	if e.Status() != StatusInPlay {
		t.Errorf("status = %s", e.Status())
	}
	if err := e.Serve(); !errors.Is(err, ErrBallInPlay) {
		t.Errorf("second serve err = %v, want ErrBallInPlay", err)
	}
}

func TestServeAfterMatchWon(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	e.match.score = [2]int{11, 3}
	e.match.status = StatusMatchWon
	if err := e.Serve(); !errors.Is(err, ErrMatchOver) {
		t.Errorf("err = %v, want ErrMatchOver", err)
	}
}

func TestUntouchedServeGoesToReceiver(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	if err := e.Serve(); err != nil {
		t.Fatal(err)
	}
	p := playOut(t, e, 5000)
	if p.Winner != 1 || p.Reason != ReasonOutOfPlay {
		t.Errorf("point = %+v, want receiver out of play", p)
	}
}

// playOut steps until a point is scored.
func playOut(t *testing.T, e *Engine, maxTicks int) PointResult {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if res := e.Step(); res.Point != nil {
			return *res.Point
		}
	}
	t.Fatalf("no point after %d ticks, ball at %v", maxTicks, e.Ball().Position)
	return PointResult{}
}

// serveLongRally launches a ball from above the server's half so it bounces
// once on each side before running out.
func serveLongRally(t *testing.T, e *Engine) PointResult {
	t.Helper()
	if err := e.Serve(); err != nil {
		t.Fatal(err)
	}
	place(e, Vec3{1.0, 1.2, 0}, Vec3{3, 0, 0}, Vec3{})
	return playOut(t, e, 5000)
}

func TestServeBecomesServerPoint(t *testing.T) {
	e := newTestEngine(t, DefaultParams())

	p := serveLongRally(t, e)
	if p.Winner != 0 {
		t.Fatalf("point = %+v, want server (0)", p)
	}
	if e.Score() != [2]int{1, 0} {
		t.Errorf("score = %v", e.Score())
	}
	if e.InPlay() || e.Ball().Position != e.Table().HomePosition() {
		t.Errorf("ball not home after point: %v", e.Ball().Position)
	}
	if e.Ball().Position[1] != 0 {
		t.Errorf("home y = %v", e.Ball().Position[1])
	}
	if e.Status() != StatusPointScored {
		t.Errorf("status = %s", e.Status())
	}
	if e.Server() != 0 {
		t.Errorf("server changed after one point")
	}

	if p = serveLongRally(t, e); p.Winner != 0 {
		t.Fatalf("second point = %+v", p)
	}
	if e.Server() != 1 {
		t.Errorf("server = %d after two points, want 1", e.Server())
	}
}

func TestServedStrokeScoresForServer(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	// Face tilted up under the toss, pushing forward.
	if err := e.UpdatePaddle(0, normalize(Vec3{0.3, 1, 0}), Vec3{0.9, 0.7, 0}, Vec3{2, 1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := e.Serve(); err != nil {
		t.Fatal(err)
	}

	var (
		strokes int
		bounces []int
		points  []PointResult
	)
	for i := 0; i < 5000 && len(points) == 0; i++ {
		res := e.Step()
		for _, ev := range res.Events {
			switch ev.Type {
			case ContactPaddle:
				strokes++
			case ContactTable:
				bounces = append(bounces, ev.Player)
			case ContactNet, ContactGraze:
				t.Fatalf("tick %d: stroke touched the net", i)
			}
		}
		if res.Point != nil {
			points = append(points, *res.Point)
		}
	}

	if strokes != 1 {
		t.Errorf("paddle contacts = %d, want 1", strokes)
	}
	if len(bounces) < 2 || bounces[0] != 0 || bounces[1] != 1 {
		t.Errorf("bounce sides = %v, want server's half then receiver's", bounces)
	}
	if len(points) != 1 {
		t.Fatalf("points = %+v, want exactly one", points)
	}
	if p := points[0]; p.Winner != 0 || p.Reason != ReasonReceiverDoubleBounce {
		t.Errorf("point = %+v, want server by receiver bounce", p)
	}
	if e.Score() != [2]int{1, 0} {
		t.Errorf("score = %v", e.Score())
	}
	// Nothing more happens until the next serve.
	for i := 0; i < 100; i++ {
		if res := e.Step(); res.Point != nil {
			t.Fatalf("second point %+v", *res.Point)
		}
	}
}

func TestHorizontalVelocityConserved(t *testing.T) {
	p := DefaultParams()
	p.DragCoefficient = 0
	p.LiftCoefficient = 0
	p.TableRebound = 1

	e := newTestEngine(t, p)
	place(e, Vec3{1.5, 1.0, 0}, Vec3{2, 0, 0}, Vec3{})
	e.match.beginServe()

	bounces := 0
	prev := e.Ball().Velocity[0]
	for i := 0; i < 500; i++ {
		e.Advance()
		vx := e.Ball().Velocity[0]
		evs := e.Events()
		if len(evs) > 0 && evs[0].Type == ContactTable {
			bounces++
			if math.Abs(vx-2) > 0.05 {
				t.Errorf("tick %d: vx after bounce = %v, want about 2", i, vx)
			}
		} else if vx != prev {
			t.Fatalf("tick %d: vx changed in flight: %v -> %v", i, prev, vx)
		}
		prev = vx
	}
	if bounces != 1 {
		t.Errorf("got %d bounces, want 1", bounces)
	}
}

func TestUpdatePaddle(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	n := Vec3{-1.0004, 0, 0}
	if err := e.UpdatePaddle(1, n, Vec3{3, 1, 0}, Vec3{-1, 0, 0}); err != nil {
		t.Fatalf("UpdatePaddle: %v", err)
	}
	p := e.Paddle(1)
	if math.Abs(p.Normal.Len()-1) > eps {
		t.Errorf("normal not renormalised: %v", p.Normal)
	}
	if p.Edges != paddleEdges(p.Normal, p.Position) {
		t.Errorf("edges not recomputed: %v", p.Edges)
	}

	before := e.Paddle(1)
	err := e.UpdatePaddle(1, Vec3{0, 0, 0}, Vec3{9, 9, 9}, Vec3{})
	if !errors.Is(err, ErrNonUnitNormal) {
		t.Errorf("err = %v, want ErrNonUnitNormal", err)
	}
	if e.Paddle(1) != before {
		t.Error("rejected update changed the paddle")
	}
	if err := e.UpdatePaddle(3, Vec3{1, 0, 0}, Vec3{}, Vec3{}); !errors.Is(err, ErrInvalidPlayer) {
		t.Errorf("err = %v, want ErrInvalidPlayer", err)
	}
}

func TestEventsResetEachAdvance(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	place(e, Vec3{1.5, 0.775, 0}, Vec3{2, -3, 0}, Vec3{})
	e.match.beginServe()

	e.Advance()
	if len(e.Events()) != 1 {
		t.Fatalf("events = %+v", e.Events())
	}
	e.Advance()
	if len(e.Events()) != 0 {
		t.Errorf("events carried over: %+v", e.Events())
	}
}

func TestSnapshot(t *testing.T) {
	e := newTestEngine(t, DefaultParams())
	place(e, Vec3{1.5, 1.0, 0}, Vec3{2, 0, 0}, Vec3{0, 3, 4})
	s := e.Snapshot()
	if s.Ball.Radius != BallRadius || s.Ball.SpinRate != 5 {
		t.Errorf("ball view = %+v", s.Ball)
	}
	if s.Paddles[1].Edges != e.PaddleEdges(1) {
		t.Errorf("paddle edges = %v", s.Paddles[1].Edges)
	}
	if s.Winner != nil {
		t.Errorf("winner set at 0-0")
	}

	e.match.score = [2]int{11, 4}
	if s = e.Snapshot(); s.Winner == nil || *s.Winner != 0 {
		t.Errorf("winner = %v", s.Winner)
	}
}
