// Package runner wraps a search engine into an asynchronous, stoppable,
// pollable computation that produces one move per search cycle.
//
// A runner is driven from a single goroutine. While a search runs, the
// only datum shared with the worker is the engine's atomic cancel flag;
// everything else is owned by the worker until Poll or Stop observes its
// result.
package runner

import (
	"io"
	"time"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// Algorithm is the engine-side contract the runner drives. Implementations
// own their rule state; the runner serialises every call except Halt.
type Algorithm[M comparable] interface {
	// SelectMove runs one search from the engine's current position for
	// side. ok is false when the search was cancelled or no move exists.
	SelectMove(side game.Player) (move M, ok bool)

	// Advance tells the engine that move m by p is now part of the game.
	Advance(m M, p game.Player)

	// Halt asks a running SelectMove to return early. Safe to call from
	// any goroutine.
	Halt()

	// Reset restores the engine's initial position and statistics.
	Reset()

	// Effort returns the engine's work counter: nodes visited for the
	// alpha-beta engines, playouts for MCTS.
	Effort() uint64
}

type result[M comparable] struct {
	move M
	ok   bool
}

// Runner owns one Algorithm and one background worker slot.
type Runner[M comparable] struct {
	name     string
	side     game.Player
	algo     Algorithm[M]
	results  chan result[M]
	running  bool
	pending  *M // our own last move, consumed by the next search cycle
	oppMove  *M // the opponent's reply, consumed by the next search cycle
	duration time.Duration
	start    time.Time
}

// New builds an idle runner playing side.
func New[M comparable](name string, side game.Player, algo Algorithm[M]) *Runner[M] {
	return &Runner[M]{
		name:    name,
		side:    side,
		algo:    algo,
		results: make(chan result[M], 1),
	}
}

// Name returns the runner's display name.
func (r *Runner[M]) Name() string { return r.name }

// Side returns the side this runner plays.
func (r *Runner[M]) Side() game.Player { return r.side }

// Running reports whether a worker is active or has an unconsumed result.
func (r *Runner[M]) Running() bool { return r.running }

// Duration returns the wall-clock time spent in finished search cycles.
func (r *Runner[M]) Duration() time.Duration { return r.duration }

// Effort returns the engine's work counter.
func (r *Runner[M]) Effort() uint64 { return r.algo.Effort() }

// Algorithm exposes the wrapped engine for read-only inspection between a
// delivered Poll and the next SuggestMove.
func (r *Runner[M]) Algorithm() Algorithm[M] { return r.algo }

// SuggestMove dispatches a search for the runner's side on a background
// worker. Queued moves are applied to the engine's state first: our own
// move, then the opponent's reply, in game order. A no-op while a cycle
// is in flight.
func (r *Runner[M]) SuggestMove() {
	if r.running {
		return
	}
	pending, opp := r.pending, r.oppMove
	r.pending, r.oppMove = nil, nil
	r.start = time.Now()
	r.running = true

	go func() {
		if pending != nil {
			r.algo.Advance(*pending, r.side)
		}
		if opp != nil {
			r.algo.Advance(*opp, r.side.Other())
		}
		m, ok := r.algo.SelectMove(r.side)
		r.results <- result[M]{move: m, ok: ok}
	}()
}

// Poll delivers the worker's move exactly once after it finishes;
// otherwise it returns false. The cycle's elapsed time is accumulated on
// the delivering call. A cancelled search delivers no move but still
// returns the runner to idle.
func (r *Runner[M]) Poll() (M, bool) {
	var zero M
	if !r.running {
		return zero, false
	}
	select {
	case res := <-r.results:
		r.running = false
		r.duration += time.Since(r.start)
		if !res.ok {
			return zero, false
		}
		return res.move, true
	default:
		return zero, false
	}
}

// ApplyMove queues the runner's own just-played move for the next search
// cycle. Only legal while idle.
func (r *Runner[M]) ApplyMove(m M) {
	r.pending = &m
}

// OpponentMove queues the opponent's latest move for the next search
// cycle. Only legal while idle.
func (r *Runner[M]) OpponentMove(m M) {
	r.oppMove = &m
}

// Stop cancels a running search and blocks until the worker returns. The
// pending result is discarded. Idempotent; a no-op while idle.
func (r *Runner[M]) Stop() {
	if !r.running {
		return
	}
	r.algo.Halt()
	<-r.results
	r.duration += time.Since(r.start)
	r.running = false
}

// Reset stops any running search, restores the engine's initial state,
// clears queued moves and zeroes the accumulated duration.
func (r *Runner[M]) Reset() {
	r.Stop()
	r.algo.Reset()
	r.pending, r.oppMove = nil, nil
	r.duration = 0
}

// Close stops the runner and releases the engine if it holds resources.
func (r *Runner[M]) Close() error {
	r.Stop()
	if c, ok := any(r.algo).(io.Closer); ok {
		return c.Close()
	}
	return nil
}
