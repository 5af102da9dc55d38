package game

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"
)

// RunnerConfig controls how a match is hosted in real time.
type RunnerConfig struct {
	MatchID        string
	FrameRate      int
	AutoServe      bool
	ServeDelay     time.Duration
	InputQueueSize int
}

// DefaultRunnerConfig renders at 60 fps and serves automatically after a
// short pause.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		MatchID:        "local",
		FrameRate:      60,
		AutoServe:      true,
		ServeDelay:     1500 * time.Millisecond,
		InputQueueSize: 64,
	}
}

// PaddleUpdate is one tracked paddle pose from the input collaborator.
type PaddleUpdate struct {
	Player   int  `json:"player"`
	Normal   Vec3 `json:"normal"`
	Position Vec3 `json:"position"`
	Velocity Vec3 `json:"velocity"`
}

// Runner drives an Engine from a ticker and hands snapshots to readers.
// Only the Run goroutine touches the engine; other goroutines talk to it
// through the input queue and the serve flag.
type Runner struct {
	cfg    RunnerConfig
	engine *Engine

	inputs       chan PaddleUpdate
	mu           sync.RWMutex
	servePending bool
	snapshot     Snapshot

	tick      uint64
	idleSince time.Time

	onSnapshot func(Snapshot)
	onEvent    func(MatchEvent)
}

// NewRunner wraps engine for hosting. Zero frame rate and queue size fall
// back to the defaults.
func NewRunner(engine *Engine, cfg RunnerConfig) *Runner {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	if cfg.InputQueueSize <= 0 {
		cfg.InputQueueSize = 64
	}
	r := &Runner{
		cfg:       cfg,
		engine:    engine,
		inputs:    make(chan PaddleUpdate, cfg.InputQueueSize),
		idleSince: time.Now(),
	}
	r.snapshot = engine.Snapshot()
	return r
}

// OnSnapshot registers fn to receive every frame's snapshot. Call before Run.
func (r *Runner) OnSnapshot(fn func(Snapshot)) { r.onSnapshot = fn }

// OnEvent registers fn to receive serve, point and match events. Call before Run.
func (r *Runner) OnEvent(fn func(MatchEvent)) { r.onEvent = fn }

// TicksPerFrame is how many Timesteps are simulated per rendered frame.
func (r *Runner) TicksPerFrame() int {
	n := int(math.Round(1 / (float64(r.cfg.FrameRate) * Timestep)))
	if n < 1 {
		return 1
	}
	return n
}

// SubmitPaddle validates an update and queues it for the next frame.
func (r *Runner) SubmitPaddle(u PaddleUpdate) error {
	if err := ValidatePaddle(u.Player, u.Normal, u.Position, u.Velocity); err != nil {
		return err
	}
	select {
	case r.inputs <- u:
		return nil
	default:
		return ErrInputQueueFull
	}
}

// RequestServe asks for a serve at the start of the next frame.
func (r *Runner) RequestServe() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.snapshot.Status {
	case StatusMatchWon:
		return ErrMatchOver
	case StatusInPlay:
		return ErrBallInPlay
	}
	r.servePending = true
	return nil
}

// Snapshot returns the state published by the last frame.
func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Run drives frames until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	interval := time.Second / time.Duration(r.cfg.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[RUNNER] Match %s started: %d fps, %d ticks per frame", r.cfg.MatchID, r.cfg.FrameRate, r.TicksPerFrame())
	for {
		select {
		case <-ctx.Done():
			log.Printf("[RUNNER] Match %s stopping", r.cfg.MatchID)
			return
		case now := <-ticker.C:
			r.Frame(now)
		}
	}
}

// Frame applies queued input, serves if due, simulates one frame's worth of
// ticks and publishes the result.
func (r *Runner) Frame(now time.Time) {
	r.drainInputs()

	var events []MatchEvent
	if ev, ok := r.maybeServe(now); ok {
		events = append(events, ev)
	}

	var contacts []ContactEvent
	for i := 0; i < r.TicksPerFrame(); i++ {
		if !r.engine.InPlay() {
			break
		}
		res := r.engine.Step()
		r.tick++
		contacts = append(contacts, res.Events...)
		if res.Point == nil {
			continue
		}
		r.idleSince = now
		events = append(events, r.pointEvent(*res.Point, now))
		if res.Won {
			events = append(events, MatchEvent{
				Type:      EventMatchWon,
				MatchID:   r.cfg.MatchID,
				Player:    res.Winner,
				Score:     res.Point.Score,
				Timestamp: now,
			})
		}
	}

	snap := r.engine.Snapshot()
	snap.Contacts = contacts
	snap.Tick = r.tick

	r.mu.Lock()
	r.snapshot = snap
	r.mu.Unlock()

	if r.onSnapshot != nil {
		r.onSnapshot(snap)
	}
	if r.onEvent != nil {
		for _, ev := range events {
			r.onEvent(ev)
		}
	}
}

func (r *Runner) drainInputs() {
	for {
		select {
		case u := <-r.inputs:
			if err := r.engine.UpdatePaddle(u.Player, u.Normal, u.Position, u.Velocity); err != nil {
				log.Printf("[RUNNER] Dropped paddle update for player %d: %v", u.Player, err)
			}
		default:
			return
		}
	}
}

func (r *Runner) maybeServe(now time.Time) (MatchEvent, bool) {
	r.mu.Lock()
	pending := r.servePending
	r.servePending = false
	r.mu.Unlock()

	if r.engine.InPlay() || r.engine.Status() == StatusMatchWon {
		return MatchEvent{}, false
	}
	due := r.cfg.AutoServe && now.Sub(r.idleSince) >= r.cfg.ServeDelay
	if !pending && !due {
		return MatchEvent{}, false
	}

	if err := r.engine.Serve(); err != nil {
		if !errors.Is(err, ErrBallInPlay) {
			log.Printf("[RUNNER] Serve failed: %v", err)
		}
		return MatchEvent{}, false
	}
	return MatchEvent{
		Type:      EventServe,
		MatchID:   r.cfg.MatchID,
		Player:    r.engine.Server(),
		Score:     r.engine.Score(),
		Timestamp: now,
	}, true
}

func (r *Runner) pointEvent(p PointResult, now time.Time) MatchEvent {
	return MatchEvent{
		Type:      EventPoint,
		MatchID:   r.cfg.MatchID,
		Player:    p.Winner,
		Reason:    p.Reason,
		Score:     p.Score,
		Timestamp: now,
	}
}
