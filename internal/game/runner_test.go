package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestRunner(t *testing.T, cfg RunnerConfig) (*Runner, *Engine) {
	t.Helper()
	e := newTestEngine(t, DefaultParams())
	return NewRunner(e, cfg), e
}

func TestTicksPerFrame(t *testing.T) {
	cases := map[int]int{60: 17, 100: 10, 1000: 1, 5000: 1}
	for fps, want := range cases {
		r, _ := newTestRunner(t, RunnerConfig{FrameRate: fps})
		if got := r.TicksPerFrame(); got != want {
			t.Errorf("TicksPerFrame at %d fps = %d, want %d", fps, got, want)
		}
	}
}

func TestSubmitPaddleValidates(t *testing.T) {
	r, _ := newTestRunner(t, DefaultRunnerConfig())
	err := r.SubmitPaddle(PaddleUpdate{Player: 5, Normal: Vec3{1, 0, 0}})
	if !errors.Is(err, ErrInvalidPlayer) {
		t.Errorf("err = %v, want ErrInvalidPlayer", err)
	}
}

func TestSubmitPaddleQueueFull(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.InputQueueSize = 2
	r, _ := newTestRunner(t, cfg)

	u := PaddleUpdate{Player: 0, Normal: Vec3{1, 0, 0}, Position: Vec3{0.5, 1, 0}}
	for i := 0; i < 2; i++ {
		if err := r.SubmitPaddle(u); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if err := r.SubmitPaddle(u); !errors.Is(err, ErrInputQueueFull) {
		t.Errorf("err = %v, want ErrInputQueueFull", err)
	}
}

func TestFrameAppliesQueuedPaddles(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.AutoServe = false
	r, e := newTestRunner(t, cfg)

	pos := Vec3{0.6, 1.1, 0.2}
	if err := r.SubmitPaddle(PaddleUpdate{Player: 0, Normal: Vec3{1, 0, 0}, Position: pos}); err != nil {
		t.Fatal(err)
	}
	r.Frame(time.Now())

	if e.Paddle(0).Position != pos {
		t.Errorf("paddle position = %v, want %v", e.Paddle(0).Position, pos)
	}
	if r.Snapshot().Paddles[0].Position != pos {
		t.Errorf("snapshot not refreshed")
	}
}

func TestRequestServe(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.AutoServe = false
	r, e := newTestRunner(t, cfg)

	var events []MatchEvent
	r.OnEvent(func(ev MatchEvent) { events = append(events, ev) })

	r.Frame(time.Now())
	if e.InPlay() {
		t.Fatal("served without a request")
	}

	if err := r.RequestServe(); err != nil {
		t.Fatalf("RequestServe: %v", err)
	}
	r.Frame(time.Now())
	if !e.InPlay() || r.Snapshot().Status != StatusInPlay {
		t.Fatal("serve request was not honoured")
	}
	if len(events) != 1 || events[0].Type != EventServe || events[0].Player != 0 {
		t.Errorf("events = %+v", events)
	}
	if err := r.RequestServe(); !errors.Is(err, ErrBallInPlay) {
		t.Errorf("err = %v, want ErrBallInPlay", err)
	}
}

func TestAutoServeWaitsForDelay(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.ServeDelay = time.Second
	r, e := newTestRunner(t, cfg)

	start := r.idleSince
	r.Frame(start.Add(500 * time.Millisecond))
	if e.InPlay() {
		t.Fatal("auto serve fired before the delay")
	}
	r.Frame(start.Add(1500 * time.Millisecond))
	if !e.InPlay() {
		t.Fatal("auto serve did not fire after the delay")
	}
}

func TestFramePublishesPoint(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.AutoServe = false
	r, e := newTestRunner(t, cfg)

	var events []MatchEvent
	var snaps int
	r.OnEvent(func(ev MatchEvent) { events = append(events, ev) })
	r.OnSnapshot(func(Snapshot) { snaps++ })

	if err := e.Serve(); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	for i := 0; i < 200 && e.InPlay(); i++ {
		r.Frame(now)
	}
	if e.InPlay() {
		t.Fatal("untouched serve never ended")
	}

	last := events[len(events)-1]
	if last.Type != EventPoint || last.Player != 1 || last.Score != [2]int{0, 1} {
		t.Errorf("last event = %+v", last)
	}
	if snaps == 0 || r.Snapshot().Status != StatusPointScored {
		t.Errorf("snapshots=%d status=%s", snaps, r.Snapshot().Status)
	}
	if r.idleSince != now {
		t.Error("idle clock not reset after the point")
	}
}

func TestFrameMatchWonEvent(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.AutoServe = false
	r, e := newTestRunner(t, cfg)
	e.match.score = [2]int{3, 10}

	var events []MatchEvent
	r.OnEvent(func(ev MatchEvent) { events = append(events, ev) })

	if err := e.Serve(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200 && e.InPlay(); i++ {
		r.Frame(time.Now())
	}
	if len(events) < 2 {
		t.Fatalf("events = %+v", events)
	}
	won := events[len(events)-1]
	if won.Type != EventMatchWon || won.Player != 1 {
		t.Errorf("last event = %+v", won)
	}
	if err := r.RequestServe(); !errors.Is(err, ErrMatchOver) {
		t.Errorf("err = %v, want ErrMatchOver", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _ := newTestRunner(t, DefaultRunnerConfig())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
