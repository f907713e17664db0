package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-sim/internal/loop/config"
	"github.com/tomz197/asteroids-sim/internal/object"
)

// ErrAlreadyStarted is returned when Run is called more than once.
var ErrAlreadyStarted = errors.New("runner already started")

// Pilot decides the ship controls for the next tick.
type Pilot interface {
	Controls(snap *Snapshot) object.Controls
}

// PilotFunc adapts a function to the Pilot interface.
type PilotFunc func(snap *Snapshot) object.Controls

// Controls calls f(snap).
func (f PilotFunc) Controls(snap *Snapshot) object.Controls {
	return f(snap)
}

// EventType identifies the type of runner event.
type EventType int

const (
	EventRoundStarted EventType = iota
	EventAsteroidDestroyed
	EventGameOver
	EventRoundFinished
)

func (t EventType) String() string {
	switch t {
	case EventRoundStarted:
		return "round_started"
	case EventAsteroidDestroyed:
		return "asteroid_destroyed"
	case EventGameOver:
		return "game_over"
	case EventRoundFinished:
		return "round_finished"
	default:
		return "unknown"
	}
}

// Event is emitted by the runner as the simulation progresses.
type Event struct {
	Type     EventType
	Round    int
	Tick     uint64
	Score    int
	ScoreAdd int // For EventAsteroidDestroyed
}

// RoundResult summarizes one finished round.
type RoundResult struct {
	Round    int     `yaml:"round"`
	Seed     uint64  `yaml:"seed"`
	Ticks    uint64  `yaml:"ticks"`
	Score    int     `yaml:"score"`
	Shots    int     `yaml:"shots"`
	Trials   int     `yaml:"spawn_trials"`
	Spawned  int     `yaml:"spawned"`
	Expected float64 `yaml:"expected_spawns"`
	GameOver bool    `yaml:"game_over"`
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	World    Options
	Rounds   int  // Rounds to play; each game over starts the next one
	MaxTicks int  // Per-round tick limit, 0 for none
	Realtime bool // Pace ticks at TickRate instead of running flat out
	TickRate int
	Logger   *log.Logger

	// Prepare, if set, is called with every new world before its first tick.
	Prepare func(w *World)
}

// Runner drives a World tick by tick with a Pilot. Only the Run goroutine
// touches the World; other goroutines read snapshots.
type Runner struct {
	opts     RunnerOptions
	pilot    Pilot
	logger   *log.Logger
	world    *World
	snapshot atomic.Pointer[Snapshot]
	events   chan Event
	started  atomic.Bool

	mu      sync.Mutex
	results []RoundResult
}

// NewRunner creates a runner. A nil pilot leaves the ship idle.
func NewRunner(pilot Pilot, opts RunnerOptions) *Runner {
	if pilot == nil {
		pilot = PilotFunc(func(*Snapshot) object.Controls { return object.Controls{} })
	}
	if opts.Rounds <= 0 {
		opts.Rounds = config.DefaultRounds
	}
	if opts.TickRate <= 0 {
		opts.TickRate = config.TickRate
	}
	if opts.World.Delta <= 0 {
		opts.World.Delta = tickInterval(opts.TickRate)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Runner{
		opts:   opts,
		pilot:  pilot,
		logger: logger,
		events: make(chan Event, config.EventBuffer),
	}
	r.world = NewWorld(r.roundOptions(0))
	r.snapshot.Store(r.world.Snapshot())
	return r
}

// Events returns the event channel. It is closed when Run returns.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Snapshot returns the most recent world snapshot.
func (r *Runner) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Results returns the results of all finished rounds.
func (r *Runner) Results() []RoundResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RoundResult, len(r.results))
	copy(out, r.results)
	return out
}

// roundOptions derives the world options for a round. Each round gets its
// own seed so rounds differ but stay reproducible.
func (r *Runner) roundOptions(round int) Options {
	o := r.opts.World
	o.Seed += uint64(round)
	return o
}

// Run plays all rounds. It blocks until they finish or ctx is cancelled and
// returns ctx.Err() in the latter case.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer close(r.events)

	for round := 0; round < r.opts.Rounds; round++ {
		if round > 0 {
			// A new round is a new world; the finished one stays over.
			r.world = NewWorld(r.roundOptions(round))
			r.snapshot.Store(r.world.Snapshot())
		}
		if err := r.playRound(ctx, round); err != nil {
			return err
		}
	}
	return nil
}

// playRound runs one world until game over, the tick limit, or cancellation.
func (r *Runner) playRound(ctx context.Context, round int) error {
	w := r.world
	seed := r.roundOptions(round).Seed
	if r.opts.Prepare != nil {
		r.opts.Prepare(w)
		r.snapshot.Store(w.Snapshot())
	}
	r.logger.Info("round started", "round", round+1, "seed", seed, "spawn_rate", w.SpawnRate)
	r.emit(Event{Type: EventRoundStarted, Round: round + 1})

	var ticker *time.Ticker
	if r.opts.Realtime {
		ticker = time.NewTicker(tickInterval(r.opts.TickRate))
		defer ticker.Stop()
	}

	defer r.finishRound(round, seed)

	for !w.GameOver {
		if r.opts.MaxTicks > 0 && w.Tick >= uint64(r.opts.MaxTicks) {
			return nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.step(round); err != nil {
			return fmt.Errorf("round %d: %w", round+1, err)
		}
	}
	return nil
}

// step advances the world once and publishes the result.
func (r *Runner) step(round int) error {
	w := r.world
	controls := r.pilot.Controls(r.snapshot.Load())

	before := w.Score
	if err := w.Step(controls); err != nil {
		return err
	}
	r.snapshot.Store(w.Snapshot())

	if gained := w.Score - before; gained > 0 {
		r.logger.Debug("asteroid destroyed", "round", round+1, "tick", w.Tick, "score", w.Score)
		r.emit(Event{Type: EventAsteroidDestroyed, Round: round + 1, Tick: w.Tick, Score: w.Score, ScoreAdd: gained})
	}
	if w.GameOver {
		r.logger.Info("game over", "round", round+1, "tick", w.Tick, "score", w.Score)
		r.emit(Event{Type: EventGameOver, Round: round + 1, Tick: w.Tick, Score: w.Score})
	}
	return nil
}

func (r *Runner) finishRound(round int, seed uint64) {
	w := r.world
	sp := w.Spawner()
	res := RoundResult{
		Round:    round + 1,
		Seed:     seed,
		Ticks:    w.Tick,
		Score:    w.Score,
		Trials:   sp.Trials(),
		Spawned:  sp.Spawned(),
		Expected: sp.Expected(),
		GameOver: w.GameOver,
	}
	if w.Ship != nil {
		res.Shots = w.Ship.Shots()
	}

	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()

	r.logger.Info("round finished", "round", res.Round, "ticks", res.Ticks, "score", res.Score, "spawned", res.Spawned)
	r.emit(Event{Type: EventRoundFinished, Round: res.Round, Tick: res.Ticks, Score: res.Score})
}

// tickInterval is the wall time between ticks at rate, never below 1ns.
func tickInterval(rate int) time.Duration {
	return max(time.Second/time.Duration(rate), time.Nanosecond)
}

// emit sends an event without blocking; events are dropped when the
// consumer falls behind.
func (r *Runner) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}
