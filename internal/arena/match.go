// Package arena pairs two engine runners, drives games to completion and
// accumulates per-round win/draw/loss statistics.
package arena

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/Mgrdich/TermTacToe/internal/game"
	"github.com/Mgrdich/TermTacToe/internal/runner"
)

// pollInterval is how often a round loop checks a runner for its move.
const pollInterval = time.Millisecond

// Config controls a series of rounds.
type Config struct {
	// Rounds is the number of games to play.
	Rounds int
	// StartingSide moves first in the first round.
	StartingSide game.Player
	// Alternate swaps the starting side between rounds.
	Alternate bool
}

// RoundResult is the outcome of one finished round.
type RoundResult struct {
	// Round is the 1-based round number.
	Round int
	// Winner is the winning side, or None for a draw.
	Winner game.Player
	// Illegal marks a round decided by a runner playing outside the
	// legal-move list; the offender loses.
	Illegal bool
	// Moves is the number of plies played.
	Moves int
	// Duration is the wall-clock length of the round.
	Duration time.Duration
}

// Match drives two runners through a configured series on clones of an
// initial position.
type Match[M comparable] struct {
	initial game.Rule[M]
	rule    game.Rule[M]
	p1, p2  *runner.Runner[M]
	cfg     Config
	report  func(RoundResult)
	legal   []M
	stopped atomic.Bool
}

// NewMatch validates the pairing and builds a match. report may be nil;
// when set it is called after every round.
func NewMatch[M comparable](initial game.Rule[M], a, b *runner.Runner[M], cfg Config, report func(RoundResult)) (*Match[M], error) {
	if a.Side() == b.Side() {
		return nil, fmt.Errorf("both runners declare side %v", a.Side())
	}
	if cfg.StartingSide == game.None {
		return nil, fmt.Errorf("starting side must be P1 or P2")
	}
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	m := &Match[M]{
		initial: initial.Clone(),
		rule:    initial.Clone(),
		cfg:     cfg,
		report:  report,
	}
	m.p1, m.p2 = a, b
	if a.Side() != game.P1 {
		m.p1, m.p2 = b, a
	}
	return m, nil
}

// Run plays every configured round and returns the aggregated statistics.
func (m *Match[M]) Run() *Stats {
	stats := newStats(m.p1.Name(), m.p2.Name(), m.cfg.Rounds)
	side := m.cfg.StartingSide

	for round := 1; round <= m.cfg.Rounds; round++ {
		res, aborted := m.playRound(round, side)
		if aborted {
			break
		}
		stats.add(res)
		stats.addRunnerTotals(m.p1.Effort(), m.p2.Effort(), m.p1.Duration(), m.p2.Duration())
		if m.report != nil {
			m.report(res)
		}
		if m.cfg.Alternate {
			side = side.Other()
		}
	}

	stats.finish()
	return stats
}

// Stop aborts the series: the flag is observed between polls, the engines
// are halted so an in-flight search returns early, and Run finishes with
// the rounds completed so far. Safe to call from another goroutine; all
// runner interaction stays on the goroutine running the match.
func (m *Match[M]) Stop() {
	m.stopped.Store(true)
	m.p1.Algorithm().Halt()
	m.p2.Algorithm().Halt()
}

// Close stops both runners and aggregates their release errors.
func (m *Match[M]) Close() error {
	var errs error
	if err := m.p1.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := m.p2.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

func (m *Match[M]) playRound(round int, side game.Player) (res RoundResult, aborted bool) {
	m.rule.CopyFrom(m.initial)
	m.p1.Reset()
	m.p2.Reset()

	res = RoundResult{Round: round}
	start := time.Now()
	// Named result: the deferred write lands in the returned value.
	defer func() { res.Duration = time.Since(start) }()

	for {
		if m.stopped.Load() {
			return res, true
		}
		if w := m.rule.Winner(); w != game.None {
			res.Winner = w
			return res, false
		}
		m.legal = m.legal[:0]
		m.rule.GenerateMoves(&m.legal)
		if len(m.legal) == 0 {
			return res, false // draw
		}

		cur, opp := m.p1, m.p2
		if side == game.P2 {
			cur, opp = m.p2, m.p1
		}

		cur.SuggestMove()
		move, ok, aborted := m.await(cur)
		if aborted {
			return res, true
		}
		if !ok || !m.isLegal(move) {
			res.Winner = side.Other()
			res.Illegal = true
			return res, false
		}

		m.rule.ApplyMove(move, side)
		cur.ApplyMove(move)
		opp.OpponentMove(move)
		res.Moves++
		side = side.Other()
	}
}

func (m *Match[M]) await(r *runner.Runner[M]) (M, bool, bool) {
	var zero M
	for {
		if m.stopped.Load() {
			r.Stop()
			return zero, false, true
		}
		if move, ok := r.Poll(); ok {
			return move, true, false
		}
		if !r.Running() {
			return zero, false, false
		}
		time.Sleep(pollInterval)
	}
}

func (m *Match[M]) isLegal(move M) bool {
	for _, l := range m.legal {
		if l == move {
			return true
		}
	}
	return false
}
