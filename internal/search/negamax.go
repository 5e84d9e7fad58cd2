package search

import (
	"math"
	"sync/atomic"

	"github.com/Mgrdich/TermTacToe/internal/game"
)

// Negamax is a depth-bounded fail-hard alpha-beta searcher. It owns its
// position and a single move buffer shared across the whole recursion;
// each level appends its generated moves and truncates them again on the
// way out, so after a search the buffer's front holds the best root move.
type Negamax[M comparable] struct {
	initial game.Rule[M]
	rule    game.Rule[M]
	eval    game.Evaluator[M]
	reorder Reorder[M]
	moves   []M
	nodes   uint64
	stop    atomic.Bool
}

// NewNegamax builds an engine starting from a clone of initial.
func NewNegamax[M comparable](initial game.Rule[M], eval game.Evaluator[M], reorder Reorder[M]) *Negamax[M] {
	return &Negamax[M]{
		initial: initial.Clone(),
		rule:    initial.Clone(),
		eval:    eval,
		reorder: reorder,
	}
}

// Rule exposes the engine's internal position so the caller can advance it
// between searches.
func (n *Negamax[M]) Rule() game.Rule[M] {
	return n.rule
}

// Nodes returns the number of nodes visited since construction or the last
// Reset.
func (n *Negamax[M]) Nodes() uint64 {
	return n.nodes
}

// Stop asks a running search to return early. Safe from any goroutine; the
// flag is cleared when the next search starts.
func (n *Negamax[M]) Stop() {
	n.stop.Store(true)
}

// Stopped reports whether the last search was cancelled.
func (n *Negamax[M]) Stopped() bool {
	return n.stop.Load()
}

// Reset restores the initial position and clears counters.
func (n *Negamax[M]) Reset() {
	n.rule.CopyFrom(n.initial)
	n.moves = n.moves[:0]
	n.nodes = 0
	n.stop.Store(false)
}

// BestMove returns the front of the move buffer, where the last search left
// its chosen root move.
func (n *Negamax[M]) BestMove() (M, bool) {
	if len(n.moves) == 0 {
		var zero M
		return zero, false
	}
	return n.moves[0], true
}

// Search explores the game tree to at most depth plies and returns the
// negamax value from side's perspective. The best root move ends up at the
// front of the move buffer.
func (n *Negamax[M]) Search(depth int, side game.Player) float64 {
	n.stop.Store(false)
	n.moves = n.moves[:0]
	return n.rec(depth, game.WinScore(game.P2), game.WinScore(game.P1), side)
}

func (n *Negamax[M]) rec(depth int, alpha, beta float64, side game.Player) float64 {
	n.nodes++

	if n.stop.Load() {
		return 0
	}

	// A decided game is terminal no matter how many moves remain.
	if w := n.rule.Winner(); w != game.None {
		if w == side {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}

	prev := len(n.moves)
	n.rule.GenerateMoves(&n.moves)
	total := len(n.moves)

	// No moves on an undecided board: draw.
	if prev == total {
		return 0
	}

	if depth == 0 {
		return float64(side) * n.eval(n.rule, side)
	}

	n.reorder(n.rule, side, n.moves[prev:total])

	value := math.Inf(-1)
	best := prev
	for i := prev; i < total; i++ {
		m := n.moves[i]
		n.rule.ApplyMove(m, side)
		v := -n.rec(depth-1, -beta, -alpha, side.Other())
		n.rule.UndoMove(m, side)

		// Drop the deeper levels' generated moves; the buffer must hold
		// exactly this level's window again.
		n.moves = n.moves[:total]

		if v > value {
			value = v
			best = i
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	n.moves[prev], n.moves[best] = n.moves[best], n.moves[prev]
	return value
}
